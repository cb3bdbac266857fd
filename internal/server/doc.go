// Package server exposes the question store over HTTP.
//
// Routes:
//
//	GET     /users                  list users (read guard)
//	GET     /questions              every question (read guard)
//	GET     /questions/:user/:week  one partition, [] if absent (read guard)
//	POST    /questions/:user/:week  replace a partition, echoes the body (write guard)
//	OPTIONS /questions/:user/:week  CORS preflight
//	GET     /metrics                Prometheus exposition
//	GET     /healthz                liveness; 503 once the guard is poisoned
//
// Every response carries Access-Control-Allow-Origin and X-Request-ID.
// Errors are rendered as {"error": {"code": ..., "message": ...}}.
package server

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/dq/internal/store"
)

// Error codes rendered for failures that do not come from the store.
const (
	CodeInvalidWeek      = "INVALID_WEEK"
	CodeInvalidBody      = "INVALID_BODY"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodeInternal         = "INTERNAL"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a store error to an HTTP status and code.
func statusFor(err error) (int, string) {
	kind := store.KindOf(err)
	switch kind {
	case store.KindKeyMismatch, store.KindInvalidKey:
		return http.StatusBadRequest, string(kind)
	case store.KindPoisoned:
		return http.StatusServiceUnavailable, string(kind)
	case store.KindIO, store.KindSerialization:
		return http.StatusInternalServerError, string(kind)
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// abortWithError renders err and stops the handler chain. Server-side
// failures are logged; client errors are left to the access log.
func (s *Server) abortWithError(c *gin.Context, status int, code string, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"request_id", requestIDFrom(c),
			"code", code,
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: err.Error()}})
}

func (s *Server) abortWithStoreError(c *gin.Context, err error) {
	status, code := statusFor(err)
	s.abortWithError(c, status, code, err)
}

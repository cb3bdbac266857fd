package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	preflightMethods = []string{http.MethodOptions, http.MethodPost, http.MethodGet}
	preflightHeaders = []string{"Content-Type", "content-type"}
)

// cors decorates every response with the configured allowed origin.
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Next()
	}
}

// preflight answers OPTIONS requests for the partition route.
func preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Methods", strings.Join(preflightMethods, ", "))
	c.Header("Access-Control-Allow-Headers", strings.Join(preflightHeaders, ", "))
	c.Status(http.StatusOK)
}

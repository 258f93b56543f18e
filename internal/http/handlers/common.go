package handlers

import (
	"net/http"

	intconfig "backend/internal/config"

	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var env intconfig.Env

// Configure hands the loaded environment to the handler package. Called once
// from router setup before any route is mounted.
func Configure(e intconfig.Env) {
	env = e
	middleware.SetJWTSecret(e.JWTSecret)
}

// RespondError sends the standard error envelope with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

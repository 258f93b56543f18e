package handlers

import (
	"errors"
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Internal detail
// goes to logs only; the client sees a generic message.
func RespondDomainError(c *gin.Context, err error) {
	reqID := middleware.GetRequestID(c)
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsAuthorization(err):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsUpstream(err):
		var up domain.UpstreamError
		errors.As(err, &up)
		utils.LogError(reqID, "http", "upstream", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success":    false,
			"message":    up.Error(),
			"error":      up.Payload,
			"request_id": reqID,
		})
	default:
		utils.LogError(reqID, "http", "internal", err)
		RespondError(c, http.StatusInternalServerError, "something went wrong")
	}
}

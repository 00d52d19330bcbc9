// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"quotepay_backend/platform/apperr"
	"quotepay_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the standard error response format: {"error":{"code","message"}}.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the stable code and human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Error sends an error response with the given status, code and message.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// HandleError maps domain errors to HTTP responses.
// Typed *apperr.Error values map to their Kind's status with the code/message
// envelope. Anything else is an unexpected failure: it is logged and reported
// as a bare 500 without leaking details to the caller.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, log *logger.Logger, err error) bool {
	if err == nil {
		return false
	}

	if domainErr, ok := err.(*apperr.Error); ok {
		if domainErr.Kind == apperr.KindInternal {
			log.Error("internal_error", "code", domainErr.Code, "error", domainErr.Error())
			c.Status(http.StatusInternalServerError)
			return true
		}
		log.BusinessError(c.FullPath(), domainErr.Code, domainErr)
		Error(c, domainErr.HTTPStatus(), domainErr.Code, domainErr.Message)
		return true
	}

	log.Error("unexpected_error", "path", c.FullPath(), "error", err.Error())
	c.Status(http.StatusInternalServerError)
	return true
}

// Package response provides the JSON response helpers used by all handlers.
// Every payload carries a success flag; failures carry a message.
package response

import (
	"net/http"

	"github.com/SafeHaul-Logistics/service-routing/internal/platform/apperr"
	"github.com/gin-gonic/gin"
)

// OK writes a 200 response with success=true merged into the payload.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// BadRequest writes a 400 failure with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

// Error writes a failure response with the status and message mapped from
// the application error taxonomy.
func Error(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"success": false,
		"message": apperr.UserMessage(err),
	})
}

package httperr

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Write renders the API error body: {status, message, timestamp}.
func Write(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIError{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().Format("2006-01-02T15:04:05"),
	})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, message)
}

func Internal(c *gin.Context, message string) {
	Write(c, http.StatusInternalServerError, message)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Write(c, http.StatusForbidden, message)
}

func Conflict(c *gin.Context, message string) {
	Write(c, http.StatusConflict, message)
}

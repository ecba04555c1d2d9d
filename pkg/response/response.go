package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API speaks a small fixed vocabulary: every failure body carries a
// human-readable "message", and validation failures additionally carry an
// "errors" map keyed by field name. Success payload shapes are owned by the
// handlers.

// Message writes a plain {message} body with the given status.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Validation writes a 400 with the per-field error map.
func Validation(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation failed.",
		"errors":  errs,
	})
}

// Internal logs nothing itself; handlers log the cause and this keeps the
// client body generic so internals never leak.
func Internal(c *gin.Context) {
	Message(c, http.StatusInternalServerError, "Server error.")
}

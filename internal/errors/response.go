package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope returned by every endpoint.
type ErrorResponse struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	ErrorCode string   `json:"errorCode,omitempty"`
	Details   []string `json:"details,omitempty"`
}

// RespondWithError writes an error envelope.
// statusCode: HTTP status; message: user-facing error text; errorCode: one of
// the constants in codes.go (empty string omits the field).
func RespondWithError(c *gin.Context, statusCode int, message, errorCode string) {
	c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     message,
		ErrorCode: errorCode,
	})
}

// RespondWithDetails writes an error envelope carrying per-field messages.
func RespondWithDetails(c *gin.Context, statusCode int, message, errorCode string, details []string) {
	c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     message,
		ErrorCode: errorCode,
		Details:   details,
	})
}

// Shortcut helpers for the common responses.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, message, AuthUnauthorized)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, message, AuthzForbidden)
}

func BadRequest(c *gin.Context, message, errorCode string) {
	RespondWithError(c, http.StatusBadRequest, message, errorCode)
}

func NotFound(c *gin.Context, message, errorCode string) {
	RespondWithError(c, http.StatusNotFound, message, errorCode)
}

func Conflict(c *gin.Context, message, errorCode string) {
	RespondWithError(c, http.StatusConflict, message, errorCode)
}

func Internal(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, message, InternalError)
}

func Database(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message, DatabaseError)
}

// MethodNotAllowed is the unconditional response for PUT/DELETE/PATCH on the
// SOP category and document collections.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{
		"success": false,
		"error":   "Method not allowed",
	})
}

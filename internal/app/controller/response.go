package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tablehost/sop-backend/pkg/pagination"
)

// respond writes the uniform success envelope. Every successful response
// carries success=true and an ISO-8601 timestamp; pagination and message are
// included only when set.
func respond(c *gin.Context, status int, data interface{}, meta *pagination.Meta, message string) {
	body := gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if meta != nil {
		body["pagination"] = *meta
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

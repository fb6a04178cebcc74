package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/tablehost/sop-backend/internal/app/service"
)

// actorFromContext reads the authenticated identity placed in the request
// context by the auth middleware.
func actorFromContext(c *gin.Context) service.Actor {
	return service.Actor{
		UserID:       c.GetUint("user_id"),
		RestaurantID: c.GetUint("restaurant_id"),
	}
}

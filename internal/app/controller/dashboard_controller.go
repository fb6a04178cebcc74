package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	apperrors "github.com/tablehost/sop-backend/internal/errors"
	"github.com/tablehost/sop-backend/internal/middleware"
	ws "github.com/tablehost/sop-backend/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is enforced by the CORS middleware; tablets connect from
		// an app webview without an Origin header.
		return true
	},
}

type DashboardController struct {
	hub *ws.Hub
}

func NewDashboardController(hub *ws.Hub) *DashboardController {
	return &DashboardController{hub: hub}
}

// WebSocketHandler handles GET /ws/dashboard
// The token arrives as a query parameter; the auth middleware has already
// validated it by the time this runs.
func (ctrl *DashboardController) WebSocketHandler(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}
	restaurantID, ok := middleware.GetRestaurantID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := &ws.Client{
		Hub:          ctrl.hub,
		Conn:         &ws.Conn{Conn: conn},
		UserID:       userID,
		RestaurantID: restaurantID,
		Send:         make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("Dashboard connection established", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
	})
}

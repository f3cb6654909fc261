package handlers

import (
	"github.com/gin-gonic/gin"

	"bookmycourt/services/realtime"
)

// NotificationsWSHandler upgrades the connection to a WebSocket subscription
// on the notification hub.
func (hb *HandlerBundle) NotificationsWSHandler(c *gin.Context) {
	realtime.ServeWs(hb.Hub, c.Writer, c.Request)
}

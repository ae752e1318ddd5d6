package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"roomrent/middleware"
	"roomrent/response"
	"roomrent/services/logger"
	"roomrent/services/notification"
)

// NotificationController upgrades authenticated requests to websocket sessions
// tagged with the user id, so order events reach only their recipient.
type NotificationController struct {
	logger logger.Logger
	melody *melody.Melody
}

func NewNotificationController(log logger.Logger, m *melody.Melody) *NotificationController {
	nc := &NotificationController{logger: log, melody: m}
	m.HandleConnect(func(s *melody.Session) {
		if id, ok := s.Get(notification.SessionUserKey); ok {
			nc.logger.Debug("ws connected user %v", id)
		}
	})
	m.HandleDisconnect(func(s *melody.Session) {
		if id, ok := s.Get(notification.SessionUserKey); ok {
			nc.logger.Debug("ws disconnected user %v", id)
		}
	})
	m.HandleError(func(s *melody.Session, err error) {
		nc.logger.Debug("ws session error: %v", err)
	})
	return nc
}

// Connect handles GET /ws
func (nc *NotificationController) Connect(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	keys := map[string]interface{}{notification.SessionUserKey: userID}
	if err := nc.melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		nc.logger.Error("ws upgrade for user %d: %v", userID, err)
	}
}

// internal/handlers/notification.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/utils"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
	}
}

// GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	utils.SuccessResponse(c, h.notifications.Recent(limit))
}

// DELETE /notifications
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	h.notifications.Clear()
	utils.SuccessResponse(c, gin.H{"cleared": true})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platefeed/feedback-backend/internal/services"
	"github.com/platefeed/feedback-backend/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.ListForUser(userID, unreadOnly)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	notificationID, ok := parseIDParam(c, "notification_id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(userID, notificationID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendSuccess(c, "All notifications marked as read", nil)
}

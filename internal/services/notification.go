package services

import (
	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/ws"
	"github.com/platefeed/feedback-backend/pkg/logger"
	"gorm.io/gorm"
)

// NotificationService owns the two fan-out effects: the best-effort
// WebSocket broadcast and the durable per-user notification row. The two are
// independent; neither failure blocks the other.
type NotificationService struct {
	db  *gorm.DB
	hub *ws.Hub
}

func NewNotificationService(db *gorm.DB, hub *ws.Hub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

// Push broadcasts an event to all connected observers. Fire-and-forget.
func (s *NotificationService) Push(eventType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(eventType, payload)
}

// Record persists a notification row for the user. A storage failure is
// logged and swallowed: the triggering operation has already committed.
func (s *NotificationService) Record(userID uint, notificationType, message string) {
	n := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Message: message,
	}
	if err := s.db.Create(&n).Error; err != nil {
		logger.Errorf("failed to record notification for user %d: %v", userID, err)
	}
}

func (s *NotificationService) ListForUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(100)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, apperr.Internal("failed to fetch notifications", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return apperr.Internal("failed to mark notification read", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return apperr.Internal("failed to mark notifications read", err)
	}
	return nil
}

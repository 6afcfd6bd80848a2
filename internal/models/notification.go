package models

import "time"

const (
	NotificationTypeReview     = "review_created"
	NotificationTypeTicket     = "ticket_created"
	NotificationTypeModeration = "review_removed"
	NotificationTypeAccount    = "account"
)

type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"size:30;not null"`
	Message   string    `json:"message" gorm:"type:text"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

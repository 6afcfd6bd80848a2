package models

import "time"

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"

	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

type Ticket struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Number    string    `json:"number" gorm:"uniqueIndex;size:50;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Subject   string    `json:"subject" gorm:"size:200;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	Priority  string    `json:"priority" gorm:"size:20;not null;index"`
	Status    string    `json:"status" gorm:"size:20;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User     User            `json:"user,omitempty"`
	Messages []TicketMessage `json:"messages,omitempty"`
}

type TicketMessage struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TicketID     uint      `json:"ticket_id" gorm:"not null;index"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	Body         string    `json:"body" gorm:"type:text;not null"`
	IsStaffReply bool      `json:"is_staff_reply" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	User User `json:"user,omitempty"`
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/internal/utils"
	"gorm.io/gorm"
)

type TicketService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewTicketService(db *gorm.DB, notifier *NotificationService) *TicketService {
	return &TicketService{db: db, notifier: notifier}
}

type CreateTicketRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Priority string `json:"priority"`
}

func (s *TicketService) Create(userID uint, req CreateTicketRequest) (*models.Ticket, error) {
	req.Subject = utils.SanitizeString(req.Subject)
	req.Body = utils.SanitizeString(req.Body)
	if req.Subject == "" || len(req.Subject) > 200 {
		return nil, apperr.Validation("subject must be 1-200 characters")
	}
	if req.Body == "" {
		return nil, apperr.Validation("ticket body cannot be empty")
	}
	if req.Priority == "" {
		req.Priority = models.TicketPriorityMedium
	}
	if !utils.IsValidTicketPriority(req.Priority) {
		return nil, apperr.Validation("priority must be one of low, medium, high, urgent")
	}

	ticket := models.Ticket{
		Number:   "TCK-" + strings.ToUpper(uuid.New().String()[:8]),
		UserID:   userID,
		Subject:  req.Subject,
		Body:     req.Body,
		Priority: req.Priority,
		Status:   models.TicketStatusOpen,
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, apperr.Internal("failed to create ticket", err)
	}

	if s.notifier != nil {
		s.notifier.Push(models.NotificationTypeTicket, ticket)
		s.notifier.Record(userID, models.NotificationTypeTicket,
			fmt.Sprintf("Your support ticket %s was opened", ticket.Number))
	}
	return &ticket, nil
}

func (s *TicketService) GetByID(ticketID uint, actor roles.Actor) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.Preload("User").Preload("Messages").Preload("Messages.User").
		First(&ticket, ticketID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket not found")
		}
		return nil, apperr.Internal("failed to fetch ticket", err)
	}
	if ticket.UserID != actor.ID && !roles.HasAtLeast(actor.Role, roles.RoleManager) {
		return nil, apperr.Forbidden("you can only view your own tickets")
	}
	return &ticket, nil
}

// ListForUser returns the actor's own tickets; staff use ListAll.
func (s *TicketService) ListForUser(userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&tickets).Error
	if err != nil {
		return nil, apperr.Internal("failed to fetch tickets", err)
	}
	return tickets, nil
}

func (s *TicketService) ListAll(status string, page, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	offset := (page - 1) * limit
	query := s.db.Preload("User").Order("created_at DESC").Offset(offset).Limit(limit)
	if status != "" {
		if !utils.IsValidTicketStatus(status) {
			return nil, apperr.Validation("unknown ticket status")
		}
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&tickets).Error; err != nil {
		return nil, apperr.Internal("failed to fetch tickets", err)
	}
	return tickets, nil
}

// AddMessage appends a message. A staff reply to an open ticket moves it to
// in_progress in the same transaction.
func (s *TicketService) AddMessage(ticketID uint, actor roles.Actor, body string) (*models.TicketMessage, error) {
	body = utils.SanitizeString(body)
	if body == "" {
		return nil, apperr.Validation("message body cannot be empty")
	}

	isStaff := roles.HasAtLeast(actor.Role, roles.RoleManager)
	var message models.TicketMessage

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("ticket not found")
			}
			return apperr.Internal("failed to fetch ticket", err)
		}
		if ticket.UserID != actor.ID && !isStaff {
			return apperr.Forbidden("you can only reply to your own tickets")
		}

		message = models.TicketMessage{
			TicketID:     ticketID,
			UserID:       actor.ID,
			Body:         body,
			IsStaffReply: isStaff,
		}
		if err := tx.Create(&message).Error; err != nil {
			return apperr.Internal("failed to create message", err)
		}

		if isStaff && ticket.Status == models.TicketStatusOpen {
			if err := tx.Model(&ticket).Update("status", models.TicketStatusInProgress).Error; err != nil {
				return apperr.Internal("failed to update ticket status", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// validTransitions is the allowed status chain. Resolved and closed are
// terminal.
var validTransitions = map[string][]string{
	models.TicketStatusOpen:       {models.TicketStatusInProgress, models.TicketStatusClosed},
	models.TicketStatusInProgress: {models.TicketStatusResolved, models.TicketStatusClosed},
}

// UpdateStatus changes the ticket status. Staff level is enforced by the
// route guard; the transition chain is enforced here.
func (s *TicketService) UpdateStatus(ticketID uint, status string) (*models.Ticket, error) {
	if !utils.IsValidTicketStatus(status) {
		return nil, apperr.Validation("unknown ticket status")
	}

	var ticket models.Ticket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket not found")
		}
		return nil, apperr.Internal("failed to fetch ticket", err)
	}

	allowed := false
	for _, next := range validTransitions[ticket.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperr.Validationf("cannot move ticket from %s to %s", ticket.Status, status)
	}

	if err := s.db.Model(&ticket).Update("status", status).Error; err != nil {
		return nil, apperr.Internal("failed to update ticket status", err)
	}
	ticket.Status = status
	return &ticket, nil
}

func (s *TicketService) UpdatePriority(ticketID uint, priority string) (*models.Ticket, error) {
	if !utils.IsValidTicketPriority(priority) {
		return nil, apperr.Validation("priority must be one of low, medium, high, urgent")
	}

	var ticket models.Ticket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ticket not found")
		}
		return nil, apperr.Internal("failed to fetch ticket", err)
	}

	if err := s.db.Model(&ticket).Update("priority", priority).Error; err != nil {
		return nil, apperr.Internal("failed to update ticket priority", err)
	}
	ticket.Priority = priority
	return &ticket, nil
}

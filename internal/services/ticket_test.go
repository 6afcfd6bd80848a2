package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
)

func setupTickets(t *testing.T) (*TicketService, *models.User, *models.User) {
	db := newTestDB(t)
	notifier := NewNotificationService(db, nil)
	svc := NewTicketService(db, notifier)
	owner := createUser(t, db, "owner@example.com", roles.RoleUser)
	manager := createUser(t, db, "manager@example.com", roles.RoleManager)
	return svc, owner, manager
}

func TestCreateTicketDefaultsAndValidation(t *testing.T) {
	svc, owner, _ := setupTickets(t)

	ticket, err := svc.Create(owner.ID, CreateTicketRequest{
		Subject: "Refund request", Body: "The order never arrived.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)
	assert.NotEmpty(t, ticket.Number)

	_, err = svc.Create(owner.ID, CreateTicketRequest{Subject: "", Body: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(owner.ID, CreateTicketRequest{Subject: "s", Body: "x", Priority: "whenever"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateTicketRecordsNotification(t *testing.T) {
	svc, owner, _ := setupTickets(t)

	ticket, err := svc.Create(owner.ID, CreateTicketRequest{
		Subject: "Login issue", Body: "Cannot sign in since yesterday.",
	})
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, svc.db.
		Where("user_id = ? AND type = ?", owner.ID, models.NotificationTypeTicket).
		Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, ticket.Number)
}

func TestStaffReplyMovesOpenTicketToInProgress(t *testing.T) {
	svc, owner, manager := setupTickets(t)
	ticket, err := svc.Create(owner.ID, CreateTicketRequest{Subject: "Help", Body: "Please help."})
	require.NoError(t, err)

	// The owner's own reply does not transition the ticket.
	_, err = svc.AddMessage(ticket.ID, asActor(owner), "Any update?")
	require.NoError(t, err)
	var reloaded models.Ticket
	require.NoError(t, svc.db.First(&reloaded, ticket.ID).Error)
	assert.Equal(t, models.TicketStatusOpen, reloaded.Status)

	// A staff reply to an open ticket auto-transitions it.
	msg, err := svc.AddMessage(ticket.ID, asActor(manager), "Looking into it now.")
	require.NoError(t, err)
	assert.True(t, msg.IsStaffReply)
	require.NoError(t, svc.db.First(&reloaded, ticket.ID).Error)
	assert.Equal(t, models.TicketStatusInProgress, reloaded.Status)

	// Further staff replies leave the status alone.
	_, err = svc.AddMessage(ticket.ID, asActor(manager), "Found the cause.")
	require.NoError(t, err)
	require.NoError(t, svc.db.First(&reloaded, ticket.ID).Error)
	assert.Equal(t, models.TicketStatusInProgress, reloaded.Status)
}

func TestTicketAccessControl(t *testing.T) {
	svc, owner, manager := setupTickets(t)
	stranger := createUser(t, svc.db, "stranger@example.com", roles.RoleUser)
	ticket, err := svc.Create(owner.ID, CreateTicketRequest{Subject: "Help", Body: "Please help."})
	require.NoError(t, err)

	_, err = svc.GetByID(ticket.ID, asActor(stranger))
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.AddMessage(ticket.ID, asActor(stranger), "me too")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.GetByID(ticket.ID, asActor(manager))
	assert.NoError(t, err, "staff can view any ticket")
}

func TestTicketStatusTransitions(t *testing.T) {
	svc, owner, _ := setupTickets(t)
	ticket, err := svc.Create(owner.ID, CreateTicketRequest{Subject: "Help", Body: "Please help."})
	require.NoError(t, err)

	// open -> resolved skips the chain.
	_, err = svc.UpdateStatus(ticket.ID, models.TicketStatusResolved)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	updated, err := svc.UpdateStatus(ticket.ID, models.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusInProgress, updated.Status)

	updated, err = svc.UpdateStatus(ticket.ID, models.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, updated.Status)

	// Resolved is terminal.
	_, err = svc.UpdateStatus(ticket.ID, models.TicketStatusOpen)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestTicketPriorityUpdate(t *testing.T) {
	svc, owner, _ := setupTickets(t)
	ticket, err := svc.Create(owner.ID, CreateTicketRequest{Subject: "Help", Body: "Please help."})
	require.NoError(t, err)

	updated, err := svc.UpdatePriority(ticket.ID, models.TicketPriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, models.TicketPriorityUrgent, updated.Priority)

	_, err = svc.UpdatePriority(ticket.ID, "asap")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

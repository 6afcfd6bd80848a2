package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
)

func TestNotificationListAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	user := createUser(t, db, "a@example.com", roles.RoleUser)
	other := createUser(t, db, "b@example.com", roles.RoleUser)

	svc.Record(user.ID, models.NotificationTypeReview, "first")
	svc.Record(user.ID, models.NotificationTypeTicket, "second")
	svc.Record(other.ID, models.NotificationTypeReview, "not yours")

	unread, err := svc.ListForUser(user.ID, true)
	require.NoError(t, err)
	require.Len(t, unread, 2)

	require.NoError(t, svc.MarkRead(user.ID, unread[0].ID))

	unread, err = svc.ListForUser(user.ID, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	all, err := svc.ListForUser(user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Cannot mark someone else's notification.
	err = svc.MarkRead(user.ID, unreadIDOf(t, svc, other.ID))
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, svc.MarkAllRead(user.ID))
	unread, err = svc.ListForUser(user.ID, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func unreadIDOf(t *testing.T, svc *NotificationService, userID uint) uint {
	t.Helper()
	list, err := svc.ListForUser(userID, true)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	return list[0].ID
}

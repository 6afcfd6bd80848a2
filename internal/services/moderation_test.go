package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
)

func setupModeration(t *testing.T) (*ModerationService, *ReviewService, *models.User, *models.User) {
	db := newTestDB(t)
	notifier := NewNotificationService(db, nil)
	reviews := NewReviewService(db, notifier, nil)
	moderation := NewModerationService(db, notifier, nil)
	author := createUser(t, db, "author@example.com", roles.RoleUser)
	manager := createUser(t, db, "manager@example.com", roles.RoleManager)
	return moderation, reviews, author, manager
}

func TestModerateEmptyReasonRejected(t *testing.T) {
	moderation, reviews, author, manager := setupModeration(t)
	review := createReview(t, reviews, author.ID, "Luigi's")

	_, err := moderation.Remove(review.ID, manager.ID, "   ")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Review stays active and the archive gains no row.
	var liveCount, archivedCount int64
	require.NoError(t, moderation.db.Model(&models.Review{}).Count(&liveCount).Error)
	require.NoError(t, moderation.db.Model(&models.DeletedReview{}).Count(&archivedCount).Error)
	assert.EqualValues(t, 1, liveCount)
	assert.EqualValues(t, 0, archivedCount)
}

func TestModerateMissingReview(t *testing.T) {
	moderation, _, _, manager := setupModeration(t)

	_, err := moderation.Remove(9999, manager.ID, "spam")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestModerateArchivesSnapshotAndReversesLikes(t *testing.T) {
	moderation, reviews, author, manager := setupModeration(t)
	review := createReview(t, reviews, author.ID, "Luigi's")

	// Seven distinct voters push the tally to 7.
	for i := 0; i < 7; i++ {
		voter := createUser(t, moderation.db, fmt.Sprintf("voter%d@example.com", i), roles.RoleUser)
		_, err := reviews.Vote(review.ID, voter.ID, models.VoteUp)
		require.NoError(t, err)
	}

	// A second review keeps contributing after the first is removed.
	other := createReview(t, reviews, author.ID, "Mario's")
	extraVoter := createUser(t, moderation.db, "extra@example.com", roles.RoleUser)
	_, err := reviews.Vote(other.ID, extraVoter.ID, models.VoteUp)
	require.NoError(t, err)

	var authorBefore models.User
	require.NoError(t, moderation.db.First(&authorBefore, author.ID).Error)
	require.Equal(t, 8, authorBefore.TotalLikes)

	archived, err := moderation.Remove(review.ID, manager.ID, "spam")
	require.NoError(t, err)

	assert.Equal(t, "spam", archived.Reason)
	assert.Equal(t, manager.ID, archived.RemovedByID)
	assert.Equal(t, review.ID, archived.ReviewID)
	assert.Equal(t, author.ID, archived.UserID)
	assert.Equal(t, "Luigi's", archived.RestaurantName)
	assert.Equal(t, 4, archived.Rating)
	assert.Equal(t, 7, archived.Likes, "snapshot keeps the tally at removal time")

	// The live row is gone from listings.
	listed, err := reviews.List("", 1, 50)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, other.ID, listed[0].ID)

	// The author keeps the like from the surviving review.
	var authorAfter models.User
	require.NoError(t, moderation.db.First(&authorAfter, author.ID).Error)
	assert.Equal(t, 1, authorAfter.TotalLikes)

	// Dependent rows are cleaned up with the review.
	var voteCount int64
	require.NoError(t, moderation.db.Model(&models.ReviewVote{}).
		Where("review_id = ?", review.ID).Count(&voteCount).Error)
	assert.EqualValues(t, 0, voteCount)
}

func TestModerateRecordsNotificationForAuthor(t *testing.T) {
	moderation, reviews, author, manager := setupModeration(t)
	review := createReview(t, reviews, author.ID, "Luigi's")

	_, err := moderation.Remove(review.ID, manager.ID, "off topic")
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, moderation.db.
		Where("user_id = ? AND type = ?", author.ID, models.NotificationTypeModeration).
		Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "off topic")
}

package services

import (
	"errors"
	"fmt"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/utils"
	"github.com/platefeed/feedback-backend/pkg/logger"
	"gorm.io/gorm"
)

// ModerationService removes reviews from public view while preserving an
// auditable snapshot. The archive insert and the live-row delete form one
// transaction: if archiving fails, the review stays active.
type ModerationService struct {
	db       *gorm.DB
	notifier *NotificationService
	email    *EmailService
}

func NewModerationService(db *gorm.DB, notifier *NotificationService, email *EmailService) *ModerationService {
	return &ModerationService{db: db, notifier: notifier, email: email}
}

// Remove archives and destroys a review. The handler layer has already
// verified the actor holds manager level or above.
func (s *ModerationService) Remove(reviewID, actorID uint, reason string) (*models.DeletedReview, error) {
	reason = utils.SanitizeString(reason)
	if reason == "" {
		return nil, apperr.Validation("a removal reason is required")
	}

	var archived models.DeletedReview
	var author models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("review not found")
			}
			return apperr.Internal("failed to fetch review", err)
		}

		// Archive first. The delete never happens without the snapshot.
		archived = models.DeletedReview{
			ReviewID:          review.ID,
			UserID:            review.UserID,
			RestaurantName:    review.RestaurantName,
			Rating:            review.Rating,
			Comment:           review.Comment,
			FoodRating:        review.FoodRating,
			ServiceRating:     review.ServiceRating,
			AtmosphereRating:  review.AtmosphereRating,
			PriceRating:       review.PriceRating,
			CleanlinessRating: review.CleanlinessRating,
			Likes:             review.Likes,
			RemovedByID:       actorID,
			Reason:            reason,
			ReviewedAt:        review.CreatedAt,
		}
		if err := tx.Create(&archived).Error; err != nil {
			return apperr.Internal("failed to archive review", err)
		}

		for _, dep := range []interface{}{
			&models.ReviewVote{}, &models.ManagerResponse{}, &models.ReviewPhoto{},
		} {
			if err := tx.Where("review_id = ?", review.ID).Delete(dep).Error; err != nil {
				return apperr.Internal("failed to delete review records", err)
			}
		}
		if err := tx.Delete(&models.Review{}, review.ID).Error; err != nil {
			return apperr.Internal("failed to delete review", err)
		}

		// The removed tally no longer counts toward the author's aggregate.
		if err := recomputeAuthorLikes(tx, review.UserID); err != nil {
			return err
		}
		return tx.First(&author, review.UserID).Error
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your review of %s was removed by a moderator: %s",
		archived.RestaurantName, reason)
	if s.notifier != nil {
		s.notifier.Push(models.NotificationTypeModeration, map[string]interface{}{
			"review_id":       archived.ReviewID,
			"restaurant_name": archived.RestaurantName,
		})
		s.notifier.Record(archived.UserID, models.NotificationTypeModeration, message)
	}
	if s.email != nil {
		s.email.SendReviewRemovedNotice(author.Email, archived.RestaurantName, reason)
	}

	logger.WithFields(map[string]interface{}{
		"review_id": archived.ReviewID,
		"actor_id":  actorID,
	}).Info("review removed")

	return &archived, nil
}

// ListArchived returns the audit trail, newest removals first.
func (s *ModerationService) ListArchived(page, limit int) ([]models.DeletedReview, error) {
	var archived []models.DeletedReview
	offset := (page - 1) * limit
	err := s.db.Order("removed_at DESC").Offset(offset).Limit(limit).Find(&archived).Error
	if err != nil {
		return nil, apperr.Internal("failed to fetch archived reviews", err)
	}
	return archived, nil
}

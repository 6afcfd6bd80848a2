package services

import (
	"errors"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/internal/utils"
	"github.com/platefeed/feedback-backend/pkg/logger"
	"gorm.io/gorm"
)

// AdminService covers user administration: role changes, blocking, and the
// dashboard. Role and block decisions are delegated to the pure guard in the
// roles package; this service only resolves actors and persists verdicts.
type AdminService struct {
	db            *gorm.DB
	email         *EmailService
	reservedEmail string
}

func NewAdminService(db *gorm.DB, email *EmailService, reservedEmail string) *AdminService {
	return &AdminService{db: db, email: email, reservedEmail: reservedEmail}
}

func (s *AdminService) ListUsers(page, limit int) ([]models.User, error) {
	var users []models.User
	offset := (page - 1) * limit
	err := s.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, apperr.Internal("failed to fetch users", err)
	}
	return users, nil
}

func (s *AdminService) findUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to fetch user", err)
	}
	return &user, nil
}

func guardActor(u *models.User) roles.Actor {
	return roles.Actor{ID: u.ID, Email: u.Email, Role: roles.Role(u.Role)}
}

// UpdateRole changes a target's role after the guard approves.
func (s *AdminService) UpdateRole(actor roles.Actor, targetID uint, newRole string) (*models.User, error) {
	target, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}

	role := roles.Role(utils.SanitizeString(newRole))
	if err := roles.CanChangeRole(actor, guardActor(target), role, s.reservedEmail); err != nil {
		return nil, err
	}

	if err := s.db.Model(target).Update("role", string(role)).Error; err != nil {
		return nil, apperr.Internal("failed to update role", err)
	}
	target.Role = string(role)

	logger.WithFields(map[string]interface{}{
		"actor_id":  actor.ID,
		"target_id": targetID,
		"new_role":  string(role),
	}).Info("role changed")
	return target, nil
}

func (s *AdminService) BlockUser(actor roles.Actor, targetID uint, reason string) (*models.User, error) {
	reason = utils.SanitizeString(reason)
	if reason == "" {
		return nil, apperr.Validation("a block reason is required")
	}

	target, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}
	if err := roles.CanBlock(actor, guardActor(target), s.reservedEmail); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"is_blocked": true, "block_reason": reason}
	if err := s.db.Model(target).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("failed to block user", err)
	}
	target.IsBlocked = true
	target.BlockReason = reason

	if s.email != nil {
		s.email.SendAccountBlockedNotice(target.Email, reason)
	}
	return target, nil
}

func (s *AdminService) UnblockUser(actor roles.Actor, targetID uint) (*models.User, error) {
	target, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}
	if err := roles.CanBlock(actor, guardActor(target), s.reservedEmail); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"is_blocked": false, "block_reason": ""}
	if err := s.db.Model(target).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("failed to unblock user", err)
	}
	target.IsBlocked = false
	target.BlockReason = ""

	if s.email != nil {
		s.email.SendAccountUnblockedNotice(target.Email)
	}
	return target, nil
}

func (s *AdminService) GetDashboardStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	counts := []struct {
		key   string
		model interface{}
		where []interface{}
	}{
		{"total_users", &models.User{}, nil},
		{"blocked_users", &models.User{}, []interface{}{"is_blocked = ?", true}},
		{"total_reviews", &models.Review{}, nil},
		{"archived_reviews", &models.DeletedReview{}, nil},
		{"total_restaurants", &models.Restaurant{}, []interface{}{"is_active = ?", true}},
		{"open_tickets", &models.Ticket{}, []interface{}{"status = ?", models.TicketStatusOpen}},
	}
	for _, c := range counts {
		var n int64
		query := s.db.Model(c.model)
		if c.where != nil {
			query = query.Where(c.where[0], c.where[1:]...)
		}
		if err := query.Count(&n).Error; err != nil {
			return nil, apperr.Internal("failed to compute dashboard stats", err)
		}
		stats[c.key] = n
	}
	return stats, nil
}

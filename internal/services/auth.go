package services

import (
	"errors"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/models"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

type SignupRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (s *AuthService) Signup(req SignupRequest) (*models.User, error) {
	req.Email = utils.SanitizeString(req.Email)
	if !utils.IsValidEmail(req.Email) {
		return nil, apperr.Validation("invalid email address")
	}
	if !utils.IsValidPassword(req.Password) {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if utils.SanitizeString(req.DisplayName) == "" {
		return nil, apperr.Validation("display name cannot be empty")
	}

	user := models.User{
		Email:       req.Email,
		Password:    req.Password, // hashed by the BeforeCreate hook
		DisplayName: utils.SanitizeString(req.DisplayName),
		Role:        string(roles.RoleUser),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("an account with this email already exists")
		}
		return nil, apperr.Internal("failed to create account", err)
	}
	return &user, nil
}

func (s *AuthService) Login(req LoginRequest) (*utils.TokenPair, *models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", utils.SanitizeString(req.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.Unauthenticated("invalid email or password")
		}
		return nil, nil, apperr.Internal("failed to look up account", err)
	}
	if !user.CheckPassword(req.Password) {
		return nil, nil, apperr.Unauthenticated("invalid email or password")
	}
	if user.IsBlocked {
		return nil, nil, apperr.Forbidden("this account is blocked: " + user.BlockReason)
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, nil, apperr.Internal("failed to issue tokens", err)
	}
	return pair, &user, nil
}

// Refresh exchanges a valid refresh token for a new pair, re-reading the
// account so role changes and blocks take effect at rotation time.
func (s *AuthService) Refresh(refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil || claims.Type != string(utils.RefreshToken) {
		return nil, apperr.Unauthenticated("invalid refresh token")
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		return nil, apperr.Unauthenticated("account no longer exists")
	}
	if user.IsBlocked {
		return nil, apperr.Forbidden("this account is blocked: " + user.BlockReason)
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Email, user.Role, s.jwtSecret)
	if err != nil {
		return nil, apperr.Internal("failed to issue tokens", err)
	}
	return pair, nil
}

func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal("failed to fetch profile", err)
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uint, req UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal("failed to fetch profile", err)
	}

	if req.DisplayName != nil {
		name := utils.SanitizeString(*req.DisplayName)
		if name == "" {
			return nil, apperr.Validation("display name cannot be empty")
		}
		user.DisplayName = name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = utils.SanitizeString(*req.AvatarURL)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, apperr.Internal("failed to update profile", err)
	}
	return &user, nil
}

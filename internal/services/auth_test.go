package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/feedback-backend/internal/apperr"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/internal/utils"
)

const testSecret = "test-secret"

func setupAuth(t *testing.T) *AuthService {
	db := newTestDB(t)
	return NewAuthService(db, testSecret)
}

func TestSignupValidationAndDuplicate(t *testing.T) {
	svc := setupAuth(t)

	_, err := svc.Signup(SignupRequest{Email: "not-an-email", Password: "password123", DisplayName: "X"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Signup(SignupRequest{Email: "a@example.com", Password: "short", DisplayName: "X"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	user, err := svc.Signup(SignupRequest{Email: "a@example.com", Password: "password123", DisplayName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, string(roles.RoleUser), user.Role, "new accounts always start as user")
	assert.NotEqual(t, "password123", user.Password, "password is stored hashed")

	_, err = svc.Signup(SignupRequest{Email: "a@example.com", Password: "password123", DisplayName: "Alice2"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestLoginAndRefresh(t *testing.T) {
	svc := setupAuth(t)
	_, err := svc.Signup(SignupRequest{Email: "a@example.com", Password: "password123", DisplayName: "Alice"})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginRequest{Email: "a@example.com", Password: "wrong-pass"})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	pair, user, err := svc.Login(LoginRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, "a@example.com", user.Email)

	claims, err := utils.ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, string(utils.AccessToken), claims.Type)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(pair.AccessToken)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	newPair, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
}

func TestBlockedAccountCannotLogin(t *testing.T) {
	svc := setupAuth(t)
	user, err := svc.Signup(SignupRequest{Email: "a@example.com", Password: "password123", DisplayName: "Alice"})
	require.NoError(t, err)

	require.NoError(t, svc.db.Model(user).
		Updates(map[string]interface{}{"is_blocked": true, "block_reason": "spam"}).Error)

	_, _, err = svc.Login(LoginRequest{Email: "a@example.com", Password: "password123"})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestUpdateProfile(t *testing.T) {
	svc := setupAuth(t)
	user, err := svc.Signup(SignupRequest{Email: "a@example.com", Password: "password123", DisplayName: "Alice"})
	require.NoError(t, err)

	name := "Alice Cooper"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileRequest{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.DisplayName)

	empty := "  "
	_, err = svc.UpdateProfile(user.ID, UpdateProfileRequest{DisplayName: &empty})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

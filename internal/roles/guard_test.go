package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platefeed/feedback-backend/internal/apperr"
)

const reserved = "root@platefeed.io"

func actor(id uint, role Role) Actor {
	return Actor{ID: id, Email: "u@example.com", Role: role}
}

func TestAdminCanNeverGrantAdmin(t *testing.T) {
	admin := actor(1, RoleAdmin)
	for _, targetRole := range []Role{RoleUser, RoleManager} {
		err := CanChangeRole(admin, actor(2, targetRole), RoleAdmin, reserved)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden),
			"admin promoting %s to admin must be denied", targetRole)
	}
}

func TestHeadAdminGrantsAdmin(t *testing.T) {
	head := actor(1, RoleHeadAdmin)
	assert.NoError(t, CanChangeRole(head, actor(2, RoleUser), RoleAdmin, reserved))
	assert.NoError(t, CanChangeRole(head, actor(2, RoleAdmin), RoleManager, reserved))
}

func TestManagerOnlyDemotesToUser(t *testing.T) {
	mgr := actor(1, RoleManager)
	assert.NoError(t, CanChangeRole(mgr, actor(2, RoleUser), RoleUser, reserved))
	for _, newRole := range []Role{RoleManager, RoleAdmin, RoleHeadAdmin} {
		err := CanChangeRole(mgr, actor(2, RoleUser), newRole, reserved)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden),
			"manager assigning %s must be denied", newRole)
	}
}

func TestCannotAssignAtOrAboveOwnRank(t *testing.T) {
	admin := actor(1, RoleAdmin)
	err := CanChangeRole(admin, actor(2, RoleUser), RoleHeadAdmin, reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestCannotTouchEqualOrHigherTarget(t *testing.T) {
	admin := actor(1, RoleAdmin)
	err := CanChangeRole(admin, actor(2, RoleAdmin), RoleUser, reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	err = CanChangeRole(admin, actor(2, RoleHeadAdmin), RoleUser, reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestBootstrapAccountRules(t *testing.T) {
	boot := Actor{ID: 7, Email: reserved, Role: RoleHeadAdmin}

	// Self-change is allowed, even downward.
	assert.NoError(t, CanChangeRole(boot, boot, RoleAdmin, reserved))

	// Any other head admin is denied.
	other := Actor{ID: 8, Email: "other@platefeed.io", Role: RoleHeadAdmin}
	err := CanChangeRole(other, boot, RoleAdmin, reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// And the bootstrap account can never be blocked.
	err = CanBlock(other, boot, reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestBlockRequiresOutranking(t *testing.T) {
	assert.NoError(t, CanBlock(actor(1, RoleManager), actor(2, RoleUser), reserved))
	assert.NoError(t, CanBlock(actor(1, RoleHeadAdmin), actor(2, RoleAdmin), reserved))

	err := CanBlock(actor(1, RoleManager), actor(2, RoleManager), reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	err = CanBlock(actor(1, RoleUser), actor(2, RoleManager), reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestUnknownNewRoleIsValidationError(t *testing.T) {
	err := CanChangeRole(actor(1, RoleHeadAdmin), actor(2, RoleUser), Role("wizard"), reserved)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

package roles

import "github.com/platefeed/feedback-backend/internal/apperr"

// Actor is the minimal view of a principal the guard needs to decide.
type Actor struct {
	ID    uint
	Email string
	Role  Role
}

// CanChangeRole decides whether actor may set target's role to newRole.
// reservedEmail identifies the bootstrap head admin, whose role only it can
// change. The decision is pure; persistence happens elsewhere.
func CanChangeRole(actor, target Actor, newRole Role, reservedEmail string) error {
	if !Valid(newRole) {
		return apperr.Validation("unknown role: " + string(newRole))
	}

	// The bootstrap account manages its own role, nobody else's hands touch it.
	if reservedEmail != "" && target.Email == reservedEmail {
		if actor.ID != target.ID {
			return apperr.Forbidden("the bootstrap administrator role can only be changed by that account")
		}
		return nil
	}

	if !IsStrictlySuperior(actor.Role, target.Role) {
		return apperr.Forbidden("cannot change the role of an equal or higher ranked account")
	}
	if Level(newRole) >= Level(actor.Role) {
		return apperr.Forbidden("cannot assign a role at or above your own rank")
	}
	if newRole == RoleAdmin && actor.Role != RoleHeadAdmin {
		return apperr.Forbidden("only the head administrator can grant the admin role")
	}
	if actor.Role == RoleManager && newRole != RoleUser {
		return apperr.Forbidden("managers may only demote accounts to user")
	}
	return nil
}

// CanBlock decides whether actor may block or unblock target.
func CanBlock(actor, target Actor, reservedEmail string) error {
	if reservedEmail != "" && target.Email == reservedEmail {
		return apperr.Forbidden("the bootstrap administrator cannot be blocked")
	}
	if !IsStrictlySuperior(actor.Role, target.Role) {
		return apperr.Forbidden("cannot block an equal or higher ranked account")
	}
	return nil
}

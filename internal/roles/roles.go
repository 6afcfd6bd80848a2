// Package roles implements the role hierarchy and the pure authorization
// decisions layered on top of it. Nothing in this package touches the store;
// callers resolve actors and targets first and ask for a verdict.
package roles

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
	RoleHeadAdmin Role = "head_admin"
)

// levels is the single source of truth for privilege comparison. Unknown
// roles map to 0 (least privilege).
var levels = map[Role]int{
	RoleUser:      10,
	RoleManager:   50,
	RoleAdmin:     80,
	RoleHeadAdmin: 100,
}

func Level(r Role) int {
	return levels[r]
}

func Valid(r Role) bool {
	_, ok := levels[r]
	return ok
}

// All returns the canonical role names, lowest privilege first.
func All() []Role {
	return []Role{RoleUser, RoleManager, RoleAdmin, RoleHeadAdmin}
}

// HasAtLeast reports whether actor meets or exceeds the required role.
func HasAtLeast(actor, required Role) bool {
	return Level(actor) >= Level(required)
}

// IsStrictlySuperior reports whether actor out-ranks target.
func IsStrictlySuperior(actor, target Role) bool {
	return Level(actor) > Level(target)
}

// HasAnyAtLeast reports whether actor meets the lowest level in the set:
// the set means "any of these roles or higher".
func HasAnyAtLeast(actor Role, allowed ...Role) bool {
	if len(allowed) == 0 {
		return false
	}
	min := Level(allowed[0])
	for _, r := range allowed[1:] {
		if l := Level(r); l < min {
			min = l
		}
	}
	return Level(actor) >= min
}

// aliases maps legacy role spellings seen in older data to canonical roles.
// Normalization happens once at the data-migration boundary (startup), never
// at authorization-check time.
var aliases = map[string]Role{
	"customer":      RoleUser,
	"member":        RoleUser,
	"moderator":     RoleManager,
	"administrator": RoleAdmin,
	"superadmin":    RoleHeadAdmin,
	"super_admin":   RoleHeadAdmin,
	"head admin":    RoleHeadAdmin,
	"headadmin":     RoleHeadAdmin,
}

// Normalize resolves a raw role string to one of the four canonical roles.
// Unknown values fall back to RoleUser.
func Normalize(raw string) Role {
	s := strings.ToLower(strings.TrimSpace(raw))
	if Valid(Role(s)) {
		return Role(s)
	}
	if r, ok := aliases[s]; ok {
		return r
	}
	return RoleUser
}

package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOrdering(t *testing.T) {
	ordered := []Role{RoleUser, RoleManager, RoleAdmin, RoleHeadAdmin}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, Level(ordered[i]), Level(ordered[i-1]),
			"%s should out-rank %s", ordered[i], ordered[i-1])
	}
	assert.Equal(t, 0, Level(Role("intern")), "unknown roles get least privilege")
	assert.Equal(t, 0, Level(Role("")))
}

func TestHasAtLeastReflexive(t *testing.T) {
	for _, r := range All() {
		assert.True(t, HasAtLeast(r, r), "hasAtLeast(%s,%s)", r, r)
		assert.False(t, IsStrictlySuperior(r, r))
	}
}

func TestHasAnyAtLeastUsesLowestOfSet(t *testing.T) {
	// The set means "any of these roles or higher".
	assert.True(t, HasAnyAtLeast(RoleManager, RoleAdmin, RoleManager))
	assert.True(t, HasAnyAtLeast(RoleHeadAdmin, RoleManager))
	assert.False(t, HasAnyAtLeast(RoleUser, RoleManager, RoleAdmin))
	assert.False(t, HasAnyAtLeast(RoleAdmin), "empty set denies everyone")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, RoleAdmin, Normalize("administrator"))
	assert.Equal(t, RoleHeadAdmin, Normalize("SuperAdmin"))
	assert.Equal(t, RoleHeadAdmin, Normalize(" head admin "))
	assert.Equal(t, RoleUser, Normalize("customer"))
	assert.Equal(t, RoleManager, Normalize("moderator"))
	assert.Equal(t, RoleManager, Normalize("manager"))
	assert.Equal(t, RoleUser, Normalize("something-else"))
}

package principal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessTeam(t *testing.T) {
	full := Principal{ID: "e1", AccessLevel: AccessFull}
	assert.True(t, full.CanAccessTeam("team-a"))
	assert.True(t, full.CanAccessTeam("team-z"))

	member := Principal{ID: "e2", AccessLevel: AccessTeamOnly, AccessTeams: []string{"team-a"}}
	assert.True(t, member.CanAccessTeam("team-a"))
	assert.False(t, member.CanAccessTeam("team-b"))

	multi := Principal{ID: "e3", AccessLevel: AccessMultiTeam, AccessTeams: []string{"team-a", "team-b"}}
	assert.True(t, multi.CanAccessTeam("team-b"))
	assert.False(t, multi.CanAccessTeam("team-c"))

	// Tanpa daftar team sama sekali, non-full tidak boleh kemana-mana.
	empty := Principal{ID: "e4", AccessLevel: AccessTeamOnly}
	assert.False(t, empty.CanAccessTeam("team-a"))
}

func TestIsFullAndOwns(t *testing.T) {
	p := Principal{ID: "e1", AccessLevel: AccessMultiTeam}
	assert.False(t, p.IsFull())
	assert.True(t, p.Owns("e1"))
	assert.False(t, p.Owns("e2"))

	assert.True(t, Principal{AccessLevel: AccessFull}.IsFull())
}

func TestValidAccessLevel(t *testing.T) {
	assert.True(t, ValidAccessLevel(AccessFull))
	assert.True(t, ValidAccessLevel(AccessMultiTeam))
	assert.True(t, ValidAccessLevel(AccessTeamOnly))
	assert.False(t, ValidAccessLevel("admin"))
	assert.False(t, ValidAccessLevel(""))
}

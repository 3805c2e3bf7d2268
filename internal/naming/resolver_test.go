package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndResolvePublicName(t *testing.T) {
	r := NewResolver()
	r.Register("rusty_sword", "Rusty Sword")

	internal, ok := r.ResolvePublicName("rusty sword")
	assert.True(t, ok, "resolution is case-insensitive")
	assert.Equal(t, "rusty_sword", internal)

	_, ok = r.ResolvePublicName("excalibur")
	assert.False(t, ok)
}

func TestDisplayNameRegistered(t *testing.T) {
	r := NewResolver()
	r.Register("ember_staff", "Staff of Embers")

	assert.Equal(t, "Staff of Embers", r.DisplayName("ember_staff"))
}

func TestDisplayNameTitleCaseFallback(t *testing.T) {
	r := NewResolver()

	assert.Equal(t, "Rusty Sword", r.DisplayName("rusty_sword"))
	assert.Equal(t, "Goblin", r.DisplayName("goblin"))
}

func TestRegisterIgnoresEmptyDisplayName(t *testing.T) {
	r := NewResolver()
	r.Register("ghost", "")

	assert.Equal(t, "Ghost", r.DisplayName("ghost"), "empty registration falls through to the fallback")
}

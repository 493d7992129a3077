package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageTrimsAndValidates(t *testing.T) {
	m, err := NewMessage("r1", RoleDherru, "  popcorn?  ")
	require.NoError(t, err)
	assert.Equal(t, "popcorn?", m.Text)

	_, err = NewMessage("r1", RoleDherru, "   ")
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewMessage("r1", RoleDherru, strings.Repeat("é", maxMessageLength+1))
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewMessage("r1", RoleDherru, strings.Repeat("é", maxMessageLength))
	require.NoError(t, err)
}

func TestNoteSealedUntilRevealed(t *testing.T) {
	n, err := NewNote("r1", RoleDherru, "see you thursday")
	require.NoError(t, err)

	assert.Equal(t, RoleNivi, n.Recipient())
	assert.False(t, n.SealedFor(RoleDherru))
	assert.True(t, n.SealedFor(RoleNivi))
	assert.Empty(t, n.ViewFor(RoleNivi).Text)
	assert.Equal(t, "see you thursday", n.ViewFor(RoleDherru).Text)
	assert.Equal(t, "see you thursday", n.Text)

	n.Revealed = true
	assert.False(t, n.SealedFor(RoleNivi))
	assert.Equal(t, "see you thursday", n.ViewFor(RoleNivi).Text)
}

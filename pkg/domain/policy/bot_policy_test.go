package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" BLOCK ")
	require.NoError(t, err)
	assert.Equal(t, ActionBlock, a)

	_, err = ParseAction("throttle")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestNew(t *testing.T) {
	owner := uuid.New()
	p, err := New(&owner, " GPTBot ", ActionBlock)
	require.NoError(t, err)
	assert.Equal(t, "GPTBot", p.BotName)
	assert.False(t, p.IsGlobal())

	global, err := New(nil, "CCBot", ActionAllow)
	require.NoError(t, err)
	assert.True(t, global.IsGlobal())

	_, err = New(nil, "", ActionAllow)
	assert.ErrorIs(t, err, ErrInvalidBotName)
	_, err = New(nil, "CCBot", Action("ignore"))
	assert.ErrorIs(t, err, ErrInvalidAction)
}

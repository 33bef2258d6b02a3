package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := New("  Owner@Example.COM ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", u.Email)
	assert.False(t, u.IsSuperAdmin)
	assert.NotEmpty(t, u.ID)

	_, err = New("not-an-email", "hash")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

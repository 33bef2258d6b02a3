package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_MatchesSentinel(t *testing.T) {
	id := uuid.New()
	err := fmt.Errorf("lookup: %w", NewNotFoundError("domain", id))

	assert.True(t, errors.Is(err, ErrEntityNotFound))

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "domain", nf.EntityType)
	assert.Equal(t, id, nf.ID)
	assert.Contains(t, err.Error(), id.String())
}

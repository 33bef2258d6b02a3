package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEntityNotFound is matched with errors.Is against any NotFoundError.
var ErrEntityNotFound = errors.New("entity not found")

type NotFoundError struct {
	EntityType string
	ID         uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID.String())
}

func (e *NotFoundError) Unwrap() error {
	return ErrEntityNotFound
}

func NewNotFoundError(entityType string, id uuid.UUID) error {
	return &NotFoundError{
		EntityType: entityType,
		ID:         id,
	}
}

package apikey

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, key *APIKey) error
	GetByKey(ctx context.Context, key string) (*APIKey, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*APIKey, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]APIKey, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

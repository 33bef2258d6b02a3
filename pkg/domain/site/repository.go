package site

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Domain) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*Domain, error)
	// GetVerifiedByName returns the verified domain with that name owned by userID.
	GetVerifiedByName(ctx context.Context, name string, userID uuid.UUID) (*Domain, error)
	ExistsForUser(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Domain, error)
	ListWithOwners(ctx context.Context) ([]WithOwner, error)
	MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Count(ctx context.Context, verifiedOnly bool) (int64, error)
}

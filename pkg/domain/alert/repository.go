package alert

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Rule, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Rule, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

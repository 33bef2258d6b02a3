package policy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// ListApplicable returns the tenant's policies followed by the global ones.
	ListApplicable(ctx context.Context, userID uuid.UUID) ([]BotPolicy, error)
	ListGlobal(ctx context.Context) ([]BotPolicy, error)
	// Upsert inserts or replaces the action for (user_id, bot_name).
	Upsert(ctx context.Context, p *BotPolicy) error
	Delete(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error
}

package traffic

import (
	"context"
)

type Repository interface {
	Save(ctx context.Context, log *Log) error
	Count(ctx context.Context, filter Filter) (int64, error)
	List(ctx context.Context, filter Filter) ([]Log, error)
	Summarize(ctx context.Context, filter Filter) (*Summary, error)
	TopBots(ctx context.Context, filter Filter, limit int) ([]BotCount, error)
	// Distribution counts rows grouped by column, which must be risk_level or behavior_label.
	Distribution(ctx context.Context, filter Filter, column string) (map[string]int64, error)
}

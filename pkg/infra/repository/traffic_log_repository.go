package repository

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/BotTracker/pkg/domain/traffic"
	"gorm.io/gorm"
)

var distributionColumns = map[string]struct{}{
	"risk_level":     {},
	"behavior_label": {},
}

type trafficLogRepository struct {
	db *gorm.DB
}

func NewTrafficLogRepository(db *gorm.DB) traffic.Repository {
	return &trafficLogRepository{
		db: db,
	}
}

func (r *trafficLogRepository) Save(ctx context.Context, log *traffic.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *trafficLogRepository) scoped(ctx context.Context, f traffic.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&traffic.Log{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.DomainID != nil {
		q = q.Where("domain_id = ?", *f.DomainID)
	}
	if f.Since != nil {
		q = q.Where("timestamp >= ?", *f.Since)
	}
	if f.BotsOnly {
		q = q.Where("detected_bot IS NOT NULL")
	}
	return q
}

func (r *trafficLogRepository) Count(ctx context.Context, f traffic.Filter) (int64, error) {
	var count int64
	err := r.scoped(ctx, f).Count(&count).Error
	return count, err
}

func (r *trafficLogRepository) List(ctx context.Context, f traffic.Filter) ([]traffic.Log, error) {
	q := r.scoped(ctx, f).Order("timestamp DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var logs []traffic.Log
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *trafficLogRepository) Summarize(ctx context.Context, f traffic.Filter) (*traffic.Summary, error) {
	var s traffic.Summary
	err := r.scoped(ctx, f).
		Select(`COUNT(*) AS total_requests,
			COUNT(*) FILTER (WHERE detected_bot IS NOT NULL) AS bot_requests,
			COUNT(DISTINCT ip_address) AS unique_ips`).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *trafficLogRepository) TopBots(ctx context.Context, f traffic.Filter, limit int) ([]traffic.BotCount, error) {
	f.BotsOnly = true
	var rows []traffic.BotCount
	err := r.scoped(ctx, f).
		Select("detected_bot AS name, COUNT(*) AS count").
		Group("detected_bot").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *trafficLogRepository) Distribution(ctx context.Context, f traffic.Filter, column string) (map[string]int64, error) {
	if _, ok := distributionColumns[column]; !ok {
		return nil, fmt.Errorf("unsupported distribution column %q", column)
	}
	var rows []struct {
		Value string
		Count int64
	}
	err := r.scoped(ctx, f).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Value] = row.Count
	}
	return out, nil
}

package repository

import (
	"context"
	"time"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type botPolicyRepository struct {
	db *gorm.DB
}

func NewBotPolicyRepository(db *gorm.DB) policy.Repository {
	return &botPolicyRepository{
		db: db,
	}
}

func (r *botPolicyRepository) ListApplicable(ctx context.Context, userID uuid.UUID) ([]policy.BotPolicy, error) {
	var policies []policy.BotPolicy
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("user_id IS NULL, bot_name").
		Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

func (r *botPolicyRepository) ListGlobal(ctx context.Context) ([]policy.BotPolicy, error) {
	var policies []policy.BotPolicy
	if err := r.db.WithContext(ctx).
		Where("user_id IS NULL").
		Order("bot_name").
		Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// Upsert updates the existing row for (user_id, bot_name) in place so its ID
// stays stable, or inserts p when there is none.
func (r *botPolicyRepository) Upsert(ctx context.Context, p *policy.BotPolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing policy.BotPolicy
		q := tx.Where("bot_name = ?", p.BotName)
		if p.UserID == nil {
			q = q.Where("user_id IS NULL")
		} else {
			q = q.Where("user_id = ?", *p.UserID)
		}
		res := q.Limit(1).Find(&existing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(p).Error
		}
		now := time.Now().UTC()
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"action":     p.Action,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = now
		return nil
	})
}

func (r *botPolicyRepository) Delete(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if userID == nil {
		q = q.Where("user_id IS NULL")
	} else {
		q = q.Where("user_id = ?", *userID)
	}
	res := q.Delete(&policy.BotPolicy{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainErrors.NewNotFoundError("bot policy", id)
	}
	return nil
}

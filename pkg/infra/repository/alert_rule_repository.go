package repository

import (
	"context"

	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type alertRuleRepository struct {
	db *gorm.DB
}

func NewAlertRuleRepository(db *gorm.DB) alert.Repository {
	return &alertRuleRepository{
		db: db,
	}
}

func (r *alertRuleRepository) Create(ctx context.Context, rule *alert.Rule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *alertRuleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]alert.Rule, error) {
	var rules []alert.Rule
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *alertRuleRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]alert.Rule, error) {
	var rules []alert.Rule
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *alertRuleRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&alert.Rule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainErrors.NewNotFoundError("alert rule", id)
	}
	return nil
}

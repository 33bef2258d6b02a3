package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/BotTracker/pkg/domain/apikey"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKeyRepository struct {
	db *gorm.DB
}

func NewApiKeyRepository(db *gorm.DB) apikey.Repository {
	return &ApiKeyRepository{
		db: db,
	}
}

func (r *ApiKeyRepository) Create(ctx context.Context, key *apikey.APIKey) error {
	return r.db.WithContext(ctx).Create(key).Error
}

func (r *ApiKeyRepository) GetByKey(ctx context.Context, key string) (*apikey.APIKey, error) {
	entity := new(apikey.APIKey)
	err := r.db.WithContext(ctx).Where("key = ?", key).First(entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apikey.ErrInvalidKey
	}
	if err != nil {
		return nil, fmt.Errorf("apikey lookup failed: %w", err)
	}
	return entity, nil
}

func (r *ApiKeyRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*apikey.APIKey, error) {
	entity := new(apikey.APIKey)
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(entity).Error; err != nil {
		return nil, notFound(err, "api key", id)
	}
	return entity, nil
}

func (r *ApiKeyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]apikey.APIKey, error) {
	var keys []apikey.APIKey
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *ApiKeyRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&apikey.APIKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainErrors.NewNotFoundError("api key", id)
	}
	return nil
}

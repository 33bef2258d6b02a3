package repository

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type domainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) site.Repository {
	return &domainRepository{
		db: db,
	}
}

func (r *domainRepository) Create(ctx context.Context, d *site.Domain) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if isDuplicate(err) {
			return site.ErrAlreadyAdded
		}
		return err
	}
	return nil
}

func (r *domainRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (*site.Domain, error) {
	var entity site.Domain
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).Error; err != nil {
		return nil, notFound(err, "domain", id)
	}
	return &entity, nil
}

func (r *domainRepository) GetVerifiedByName(ctx context.Context, name string, userID uuid.UUID) (*site.Domain, error) {
	var entity site.Domain
	err := r.db.WithContext(ctx).
		Where("domain = ? AND user_id = ? AND is_verified = ?", site.NormalizeName(name), userID, true).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, site.ErrNotVerified
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *domainRepository) ExistsForUser(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&site.Domain{}).
		Where("user_id = ? AND domain = ?", userID, site.NormalizeName(name)).
		Count(&count).Error
	return count > 0, err
}

func (r *domainRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]site.Domain, error) {
	var domains []site.Domain
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}

func (r *domainRepository) ListWithOwners(ctx context.Context) ([]site.WithOwner, error) {
	var rows []site.WithOwner
	if err := r.db.WithContext(ctx).
		Table("public.domains AS d").
		Select("d.*, u.email AS user_email").
		Joins("JOIN public.users u ON u.id = d.user_id").
		Order("d.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *domainRepository) MarkVerified(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&site.Domain{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_verified": true, "verified_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainErrors.NewNotFoundError("domain", id)
	}
	return nil
}

func (r *domainRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&site.Domain{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainErrors.NewNotFoundError("domain", id)
	}
	return nil
}

func (r *domainRepository) Count(ctx context.Context, verifiedOnly bool) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&site.Domain{})
	if verifiedOnly {
		q = q.Where("is_verified = ?", true)
	}
	err := q.Count(&count).Error
	return count, err
}

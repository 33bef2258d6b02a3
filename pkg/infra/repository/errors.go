package repository

import (
	"errors"

	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error to the domain NotFoundError.
func notFound(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErrors.NewNotFoundError(entity, id)
	}
	return err
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

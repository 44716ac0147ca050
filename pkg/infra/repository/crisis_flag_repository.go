package repository

import (
	"context"
	"errors"

	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"gorm.io/gorm"
)

type CrisisFlagRepository interface {
	crisis.Repository
	crisis.FlagFinder
}

type crisisFlagRepository struct {
	db *gorm.DB
}

func NewCrisisFlagRepository(db *gorm.DB) CrisisFlagRepository {
	return &crisisFlagRepository{db: db}
}

// Save relies on the UNIQUE(conversation_id, keyword) index; the connection must be opened with
// TranslateError so the violation arrives as gorm.ErrDuplicatedKey.
func (r *crisisFlagRepository) Save(ctx context.Context, flag *crisis.Flag) error {
	err := r.db.WithContext(ctx).Create(flag).Error
	return translateFlagError(err)
}

func (r *crisisFlagRepository) ListRecent(ctx context.Context, limit int) ([]crisis.Flag, error) {
	var flags []crisis.Flag
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}

func translateFlagError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return crisis.ErrAlreadyFlagged
	}
	return err
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/domain/toggle"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type toggleRepository struct {
	db *gorm.DB
}

func NewToggleRepository(db *gorm.DB) toggle.Repository {
	return &toggleRepository{db: db}
}

func (r *toggleRepository) Get(ctx context.Context, name string) (*toggle.FeatureToggle, error) {
	var t toggle.FeatureToggle
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, toggle.ErrToggleNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *toggleRepository) List(ctx context.Context) ([]toggle.FeatureToggle, error) {
	var toggles []toggle.FeatureToggle
	if err := r.db.WithContext(ctx).Order("name").Find(&toggles).Error; err != nil {
		return nil, err
	}
	return toggles, nil
}

func (r *toggleRepository) Upsert(ctx context.Context, t *toggle.FeatureToggle) error {
	t.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(t).Error
}

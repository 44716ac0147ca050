package repository

import (
	"context"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) crisis.ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) FindExact(ctx context.Context, language, region string) ([]crisis.Resource, error) {
	var resources []crisis.Resource
	if err := r.db.WithContext(ctx).
		Where("language = ? AND region = ?", language, region).
		Order("priority, name").
		Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) Create(ctx context.Context, resource *crisis.Resource) error {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(resource).Error
}

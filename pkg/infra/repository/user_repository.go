package repository

import (
	"context"
	"errors"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/domain"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	var u user.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", userID)
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]user.User, error) {
	var admins []user.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", user.RoleAdmin).
		Order("created_at").
		Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *userRepository) UpdatePreferences(ctx context.Context, id string, prefs user.Preferences) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{"updated_at": time.Now()}
	if prefs.PreferredProvider != "" {
		updates["preferred_provider"] = prefs.PreferredProvider
	}
	if prefs.Language != "" {
		updates["language"] = prefs.Language
	}
	if prefs.Region != "" {
		updates["region"] = prefs.Region
	}
	result := r.db.WithContext(ctx).Model(&user.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", userID)
	}
	return nil
}

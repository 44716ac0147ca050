package toggle

import (
	"context"
	"errors"
	"time"
)

const CrisisAlertsEnabled = "crisis_alerts_enabled"

var ErrToggleNotFound = errors.New("feature toggle not found")

type FeatureToggle struct {
	Name      string    `json:"name" gorm:"primaryKey"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FeatureToggle) TableName() string {
	return "feature_toggles"
}

//go:generate mockery --name=Checker --dir=. --output=./mocks --filename=toggle_checker_mock.go --case=underscore --with-expecter
type Checker interface {
	// IsEnabled reports the toggle state; a toggle that does not exist is enabled.
	IsEnabled(ctx context.Context, name string) bool
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=toggle_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Get(ctx context.Context, name string) (*FeatureToggle, error)
	List(ctx context.Context) ([]FeatureToggle, error)
	Upsert(ctx context.Context, t *FeatureToggle) error
}

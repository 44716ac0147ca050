package user

import "context"

// Preferences is a partial update: empty fields are left untouched.
type Preferences struct {
	PreferredProvider string `json:"preferred_provider"`
	Language          string `json:"language"`
	Region            string `json:"region"`
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=user_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	ListAdmins(ctx context.Context) ([]User, error)
	UpdatePreferences(ctx context.Context, id string, prefs Preferences) error
}

// PreferenceRepository returns the provider a user explicitly chose, or "" when none is recorded.
type PreferenceRepository interface {
	PreferredProvider(ctx context.Context, userID string) (string, error)
}

package user

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

var ErrUnknownProvider = errors.New("unknown provider")

//go:generate mockery --name=PreferencesUpdater --dir=. --output=./mocks --filename=preferences_updater_mock.go --case=underscore --with-expecter
type PreferencesUpdater interface {
	Update(ctx context.Context, userID string, prefs domain.Preferences) error
}

type preferencesUpdater struct {
	logger    *logrus.Logger
	repo      domain.Repository
	publisher cache.EventPublisher
	providers map[string]struct{}
}

// NewPreferencesUpdater accepts "auto" or one of the registered provider names.
func NewPreferencesUpdater(
	logger *logrus.Logger,
	repo domain.Repository,
	publisher cache.EventPublisher,
	providers []string,
) PreferencesUpdater {
	known := make(map[string]struct{}, len(providers)+1)
	known[domain.ProviderAuto] = struct{}{}
	for _, p := range providers {
		known[p] = struct{}{}
	}
	return &preferencesUpdater{logger: logger, repo: repo, publisher: publisher, providers: known}
}

func (u *preferencesUpdater) Update(ctx context.Context, userID string, prefs domain.Preferences) error {
	if prefs.PreferredProvider != "" {
		if _, ok := u.providers[prefs.PreferredProvider]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownProvider, prefs.PreferredProvider)
		}
	}
	if err := u.repo.UpdatePreferences(ctx, userID, prefs); err != nil {
		return err
	}
	if err := u.publisher.Publish(ctx, channel.CacheEventsChannel, event.UserUpdatedEvent{UserID: userID}); err != nil {
		u.logger.WithError(err).WithField("user_id", userID).Warn("failed to publish user invalidation")
	}
	return nil
}

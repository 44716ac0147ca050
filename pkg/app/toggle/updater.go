package toggle

import (
	"context"
	"fmt"

	domain "github.com/NeuralTrust/SafeChat/pkg/domain/toggle"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Updater --dir=. --output=./mocks --filename=toggle_updater_mock.go --case=underscore --with-expecter
type Updater interface {
	Set(ctx context.Context, name string, enabled bool) (*domain.FeatureToggle, error)
}

type updater struct {
	logger    *logrus.Logger
	repo      domain.Repository
	publisher cache.EventPublisher
}

func NewUpdater(logger *logrus.Logger, repo domain.Repository, publisher cache.EventPublisher) Updater {
	return &updater{logger: logger, repo: repo, publisher: publisher}
}

func (u *updater) Set(ctx context.Context, name string, enabled bool) (*domain.FeatureToggle, error) {
	t := &domain.FeatureToggle{Name: name, Enabled: enabled}
	if err := u.repo.Upsert(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update toggle %s: %w", name, err)
	}
	u.logger.WithFields(logrus.Fields{"toggle": name, "enabled": enabled}).Info("feature toggle updated")

	if err := u.publisher.Publish(ctx, channel.CacheEventsChannel, event.ToggleUpdatedEvent{
		Name:    name,
		Enabled: enabled,
	}); err != nil {
		u.logger.WithError(err).WithField("toggle", name).Warn("failed to publish toggle invalidation")
	}
	return t, nil
}

package user

import (
	"context"

	domain "github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

type preferenceFinder struct {
	users  Finder
	cache  cache.Client
	logger *logrus.Logger
}

// NewPreferenceFinder reads the provider preference from redis and falls back to the user record.
// An empty preference is cached too, so users without one do not hit the database on every message.
func NewPreferenceFinder(users Finder, c cache.Client, logger *logrus.Logger) domain.PreferenceRepository {
	return &preferenceFinder{users: users, cache: c, logger: logger}
}

func (f *preferenceFinder) PreferredProvider(ctx context.Context, userID string) (string, error) {
	cached, err := f.cache.GetPreferredProvider(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !cache.IsMiss(err) {
		f.logger.WithError(err).Warn("distributed cache read preference failure")
	}

	entity, err := f.users.Find(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := f.cache.SavePreferredProvider(ctx, userID, entity.PreferredProvider); err != nil {
		f.logger.WithError(err).Warn("failed to cache provider preference")
	}
	return entity.PreferredProvider, nil
}

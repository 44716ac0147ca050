package toggle

import (
	"context"
	"errors"

	domain "github.com/NeuralTrust/SafeChat/pkg/domain/toggle"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

type checker struct {
	repo        domain.Repository
	memoryCache *cache.TTLMap
	logger      *logrus.Logger
}

// NewChecker answers toggle reads from a short-lived memory cache in front of the repository.
// Missing toggles are enabled; when the repository fails the toggle is also treated as enabled
// so crisis alerting keeps working during a database outage.
func NewChecker(repo domain.Repository, c cache.Client, logger *logrus.Logger) domain.Checker {
	return &checker{
		repo:        repo,
		memoryCache: c.GetTTLMap(cache.ToggleTTLName),
		logger:      logger,
	}
}

func (c *checker) IsEnabled(ctx context.Context, name string) bool {
	if cached, ok := c.memoryCache.Get(name); ok {
		if enabled, ok := cached.(bool); ok {
			return enabled
		}
	}

	t, err := c.repo.Get(ctx, name)
	switch {
	case errors.Is(err, domain.ErrToggleNotFound):
		c.memoryCache.Set(name, true)
		return true
	case err != nil:
		c.logger.WithError(err).WithField("toggle", name).Warn("failed to read feature toggle, assuming enabled")
		return true
	}
	c.memoryCache.Set(name, t.Enabled)
	return t.Enabled
}

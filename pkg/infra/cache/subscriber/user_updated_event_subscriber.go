package subscriber

import (
	"context"
	"fmt"

	infraCache "github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type UserUpdatedEventSubscriber struct {
	logger      *logrus.Logger
	cache       infraCache.Client
	memoryCache *infraCache.TTLMap
}

func NewUserUpdatedEventSubscriber(
	logger *logrus.Logger,
	c infraCache.Client,
) infraCache.EventSubscriber[event.UserUpdatedEvent] {
	return &UserUpdatedEventSubscriber{
		logger:      logger,
		cache:       c,
		memoryCache: c.GetTTLMap(infraCache.UserTTLName),
	}
}

func (s UserUpdatedEventSubscriber) OnEvent(ctx context.Context, evt event.UserUpdatedEvent) error {
	s.logger.WithField("user_id", evt.UserID).Debug("invalidating user cache")
	if s.memoryCache != nil {
		s.memoryCache.Delete(evt.UserID)
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf(infraCache.PreferredProviderKeyPattern, evt.UserID)); err != nil {
		return fmt.Errorf("failed to delete cached provider preference: %w", err)
	}
	return nil
}

package subscriber

import (
	"context"

	infraCache "github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type ToggleUpdatedEventSubscriber struct {
	logger      *logrus.Logger
	memoryCache *infraCache.TTLMap
}

func NewToggleUpdatedEventSubscriber(
	logger *logrus.Logger,
	c infraCache.Client,
) infraCache.EventSubscriber[event.ToggleUpdatedEvent] {
	return &ToggleUpdatedEventSubscriber{
		logger:      logger,
		memoryCache: c.GetTTLMap(infraCache.ToggleTTLName),
	}
}

func (s ToggleUpdatedEventSubscriber) OnEvent(_ context.Context, evt event.ToggleUpdatedEvent) error {
	s.logger.WithFields(logrus.Fields{
		"toggle":  evt.Name,
		"enabled": evt.Enabled,
	}).Debug("invalidating toggle cache")
	if s.memoryCache != nil {
		s.memoryCache.Delete(evt.Name)
	}
	return nil
}

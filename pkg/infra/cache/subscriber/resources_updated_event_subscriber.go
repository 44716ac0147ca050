package subscriber

import (
	"context"

	infraCache "github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type ResourcesUpdatedEventSubscriber struct {
	logger      *logrus.Logger
	memoryCache *infraCache.TTLMap
}

func NewResourcesUpdatedEventSubscriber(
	logger *logrus.Logger,
	c infraCache.Client,
) infraCache.EventSubscriber[event.ResourcesUpdatedEvent] {
	return &ResourcesUpdatedEventSubscriber{
		logger:      logger,
		memoryCache: c.GetTTLMap(infraCache.ResourceTTLName),
	}
}

// OnEvent drops every cached lookup: a new resource can change the fallback chain of any locale.
func (s ResourcesUpdatedEventSubscriber) OnEvent(_ context.Context, evt event.ResourcesUpdatedEvent) error {
	s.logger.WithFields(logrus.Fields{
		"language": evt.Language,
		"region":   evt.Region,
	}).Debug("invalidating crisis resources cache")
	if s.memoryCache != nil {
		s.memoryCache.Clear()
	}
	return nil
}

package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

var ErrInvalidResource = errors.New("a crisis resource needs a name and at least one of phone, text line or url")

//go:generate mockery --name=Creator --dir=. --output=./mocks --filename=resource_creator_mock.go --case=underscore --with-expecter
type Creator interface {
	Create(ctx context.Context, resource *crisis.Resource) error
}

type creator struct {
	logger    *logrus.Logger
	repo      crisis.ResourceRepository
	publisher cache.EventPublisher
}

func NewCreator(logger *logrus.Logger, repo crisis.ResourceRepository, publisher cache.EventPublisher) Creator {
	return &creator{logger: logger, repo: repo, publisher: publisher}
}

func (c *creator) Create(ctx context.Context, resource *crisis.Resource) error {
	if strings.TrimSpace(resource.Name) == "" ||
		(resource.Phone == "" && resource.TextLine == "" && resource.URL == "") {
		return ErrInvalidResource
	}
	loc := normalize(resource.Language, resource.Region)
	resource.Language, resource.Region = loc.language, loc.region

	if err := c.repo.Create(ctx, resource); err != nil {
		return fmt.Errorf("failed to create crisis resource: %w", err)
	}
	if err := c.publisher.Publish(ctx, channel.CacheEventsChannel, event.ResourcesUpdatedEvent{
		Language: resource.Language,
		Region:   resource.Region,
	}); err != nil {
		c.logger.WithError(err).Warn("failed to publish crisis resources invalidation")
	}
	return nil
}

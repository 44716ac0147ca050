package user

import (
	"context"
	"errors"

	domain "github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for user model")

//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=user_finder_mock.go --case=underscore --with-expecter
type Finder interface {
	Find(ctx context.Context, id string) (*domain.User, error)
}

type finder struct {
	repo        domain.Repository
	memoryCache *cache.TTLMap
	logger      *logrus.Logger
}

func NewFinder(repo domain.Repository, c cache.Client, logger *logrus.Logger) Finder {
	return &finder{
		repo:        repo,
		memoryCache: c.GetTTLMap(cache.UserTTLName),
		logger:      logger,
	}
}

func (f *finder) Find(ctx context.Context, id string) (*domain.User, error) {
	if cached, ok := f.memoryCache.Get(id); ok {
		if entity, ok := cached.(*domain.User); ok {
			return entity, nil
		}
		f.logger.WithError(ErrInvalidCacheType).Debug("memory cache read user failure")
	}

	entity, err := f.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.memoryCache.Set(id, entity)
	return entity, nil
}

package resources

import (
	"context"
	"errors"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidCacheType = errors.New("invalid type assertion for crisis resources")

type locale struct {
	language string
	region   string
}

type finder struct {
	repo        crisis.ResourceRepository
	memoryCache *cache.TTLMap
	group       singleflight.Group
	logger      *logrus.Logger
}

// NewFinder returns the catalog used while answering messages. Lookups walk
// language+region, then language+GLOBAL, then en+GLOBAL and stop at the first non-empty set.
func NewFinder(repo crisis.ResourceRepository, c cache.Client, logger *logrus.Logger) crisis.ResourceCatalog {
	return &finder{
		repo:        repo,
		memoryCache: c.GetTTLMap(cache.ResourceTTLName),
		logger:      logger,
	}
}

func (f *finder) Find(ctx context.Context, language, region string) ([]crisis.Resource, error) {
	loc := normalize(language, region)
	key := loc.language + "|" + loc.region

	if resources, err := f.getFromMemoryCache(key); err == nil {
		return resources, nil
	} else if errors.Is(err, ErrInvalidCacheType) {
		f.logger.WithError(err).Warn("memory cache read crisis resources failure")
	}

	v, err, _ := f.group.Do(key, func() (interface{}, error) {
		return f.lookup(ctx, loc)
	})
	if err != nil {
		return nil, err
	}
	resources, ok := v.([]crisis.Resource)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	f.memoryCache.Set(key, resources)
	return clone(resources), nil
}

func (f *finder) lookup(ctx context.Context, loc locale) ([]crisis.Resource, error) {
	for _, candidate := range fallbackChain(loc) {
		found, err := f.repo.FindExact(ctx, candidate.language, candidate.region)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return found, nil
		}
	}
	f.logger.WithFields(logrus.Fields{
		"language": loc.language,
		"region":   loc.region,
	}).Warn("no crisis resources registered for locale or global fallback")
	return []crisis.Resource{}, nil
}

func (f *finder) getFromMemoryCache(key string) ([]crisis.Resource, error) {
	cached, found := f.memoryCache.Get(key)
	if !found {
		return nil, errors.New("crisis resources not found in memory cache")
	}
	resources, ok := cached.([]crisis.Resource)
	if !ok {
		return nil, ErrInvalidCacheType
	}
	return clone(resources), nil
}

func normalize(language, region string) locale {
	loc := locale{
		language: strings.ToLower(strings.TrimSpace(language)),
		region:   strings.ToUpper(strings.TrimSpace(region)),
	}
	if loc.language == "" {
		loc.language = crisis.DefaultLanguage
	}
	if loc.region == "" {
		loc.region = crisis.GlobalRegion
	}
	return loc
}

func fallbackChain(loc locale) []locale {
	chain := []locale{
		loc,
		{language: loc.language, region: crisis.GlobalRegion},
		{language: crisis.DefaultLanguage, region: crisis.GlobalRegion},
	}
	out := make([]locale, 0, len(chain))
	seen := make(map[locale]struct{}, len(chain))
	for _, l := range chain {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// clone keeps callers from mutating the cached slice.
func clone(resources []crisis.Resource) []crisis.Resource {
	out := make([]crisis.Resource, len(resources))
	copy(out, resources)
	return out
}

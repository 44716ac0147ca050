package crisis

import (
	"context"
	"errors"
)

// ErrAlreadyFlagged is returned by Repository.Save when the (conversation, keyword) pair already exists.
var ErrAlreadyFlagged = errors.New("crisis flag already recorded")

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=crisis_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Save(ctx context.Context, flag *Flag) error
}

type FlagFinder interface {
	// ListRecent returns the newest flags first.
	ListRecent(ctx context.Context, limit int) ([]Flag, error)
}

// ResourceCatalog finds localized crisis-support resources. Implementations fall back to the
// global English set when nothing matches the language and region.
type ResourceCatalog interface {
	Find(ctx context.Context, language, region string) ([]Resource, error)
}

type ResourceRepository interface {
	// FindExact returns the resources registered for exactly this language and region, by priority.
	FindExact(ctx context.Context, language, region string) ([]Resource, error)
	Create(ctx context.Context, resource *Resource) error
}

// EventExporter ships crisis events to an external stream.
type EventExporter interface {
	Export(ctx context.Context, evt *Event) error
}

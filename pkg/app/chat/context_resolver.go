package chat

import (
	"context"

	appUser "github.com/NeuralTrust/SafeChat/pkg/app/user"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name=ContextResolver --dir=. --output=./mocks --filename=context_resolver_mock.go --case=underscore --with-expecter
type ContextResolver interface {
	// Resolve never fails; missing data is replaced by defaults.
	Resolve(ctx context.Context, userID string) *user.Context
}

type contextResolver struct {
	logger *logrus.Logger
	users  appUser.Finder
	prefs  user.PreferenceRepository
}

func NewContextResolver(logger *logrus.Logger, users appUser.Finder, prefs user.PreferenceRepository) ContextResolver {
	return &contextResolver{
		logger: logger,
		users:  users,
		prefs:  prefs,
	}
}

func (r *contextResolver) Resolve(ctx context.Context, userID string) *user.Context {
	uctx := user.DefaultContext(userID)
	if userID == "" {
		return uctx
	}

	var (
		profile   *user.User
		preferred string
	)
	// both lookups are best-effort, so the group never returns an error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := r.users.Find(gctx, userID)
		if err != nil {
			r.logger.WithError(err).WithField("user_id", userID).Debug("user profile unavailable, using defaults")
			return nil
		}
		profile = u
		return nil
	})
	g.Go(func() error {
		p, err := r.prefs.PreferredProvider(gctx, userID)
		if err != nil {
			r.logger.WithError(err).WithField("user_id", userID).Debug("preferred provider unavailable")
			return nil
		}
		preferred = p
		return nil
	})
	_ = g.Wait() //nolint:errcheck

	if profile != nil {
		uctx.Profile = profile.Profile
		if profile.Language != "" {
			uctx.Language = profile.Language
		}
		if profile.Region != "" {
			uctx.Region = profile.Region
		}
		uctx.PreferredProvider = profile.PreferredProvider
	}
	if preferred != "" {
		uctx.PreferredProvider = preferred
	}
	return uctx
}

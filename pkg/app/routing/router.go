package routing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/NeuralTrust/SafeChat/pkg/infra/prometheus"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

const (
	ProviderError = "error"
	modelNone     = "none"
)

var (
	errProviderNotRegistered = errors.New("provider not registered")
	errProviderTimeout       = errors.New("provider timed out")
)

//go:generate mockery --name=Router --dir=. --output=./mocks --filename=router_mock.go --case=underscore --with-expecter
type Router interface {
	// Route never fails: when every attempt fails the reply comes from the "error" provider.
	Route(ctx context.Context, req providers.Request) *providers.Response
}

type Option func(*router)

// WithClock replaces the time source used by round robin selection and latency tracking.
func WithClock(now func() time.Time) Option {
	return func(r *router) { r.now = now }
}

// WithRandom replaces the [0,1) source used for the local load-balance percentage.
func WithRandom(random func() float64) Option {
	return func(r *router) { r.random = random }
}

type router struct {
	logger     *logrus.Logger
	cfg        config.RouterConfig
	backends   map[string]providers.Backend
	prefs      user.PreferenceRepository
	errorReply string
	now        func() time.Time
	random     func() float64
}

func NewRouter(
	logger *logrus.Logger,
	cfg config.RouterConfig,
	errorReply string,
	backends map[string]providers.Backend,
	prefs user.PreferenceRepository,
	opts ...Option,
) Router {
	r := &router{
		logger:     logger,
		cfg:        cfg,
		backends:   backends,
		prefs:      prefs,
		errorReply: errorReply,
		now:        time.Now,
		random:     rand.Float64, //nolint:gosec
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *router) Route(ctx context.Context, req providers.Request) *providers.Response {
	primary := r.selectProvider(ctx, req)
	log := r.logger.WithFields(logrus.Fields{
		"user_id":         req.UserID,
		"conversation_id": req.ConversationID,
		"provider":        primary,
	})

	resp, err := r.invoke(ctx, primary, req)
	if err == nil {
		return resp
	}
	log.WithError(err).Warn("primary provider failed")

	fallback := r.fallbackFor(primary)
	if fallback == "" {
		log.Error("no fallback provider available")
		return r.errorResponse()
	}

	prometheus.ProviderFallbacksTotal.Inc()
	resp, err = r.invoke(ctx, fallback, req)
	if err != nil {
		log.WithError(err).WithField("fallback", fallback).Error("fallback provider failed")
		return r.errorResponse()
	}
	if resp.Metadata == nil {
		resp.Metadata = map[string]string{}
	}
	resp.Metadata[providers.MetadataFallbackFrom] = primary
	return resp
}

func (r *router) selectProvider(ctx context.Context, req providers.Request) string {
	if preferred := r.preference(ctx, req); preferred != "" {
		return preferred
	}

	switch r.cfg.Strategy {
	case config.StrategyRoundRobin:
		if r.localUsable() && r.now().Unix()%2 == 0 {
			return r.cfg.LocalProvider
		}
		return r.cfg.DefaultProvider
	default:
		if r.localUsable() {
			if r.cfg.PreferLocalWhenDetailed && req.Context.Profile.HasFields(r.cfg.DetailedProfileFields) {
				return r.cfg.LocalProvider
			}
			if r.random() < float64(r.cfg.LocalPercentage)/100 {
				return r.cfg.LocalProvider
			}
		}
		return r.cfg.DefaultProvider
	}
}

// preference returns the user's explicit provider choice when it can actually be served.
func (r *router) preference(ctx context.Context, req providers.Request) string {
	preferred := req.Context.PreferredProvider
	if preferred == "" && r.prefs != nil && req.UserID != "" {
		p, err := r.prefs.PreferredProvider(ctx, req.UserID)
		if err != nil {
			r.logger.WithError(err).WithField("user_id", req.UserID).Debug("could not load provider preference")
		}
		preferred = p
	}
	if preferred == "" || preferred == user.ProviderAuto {
		return ""
	}
	if !r.usable(preferred) {
		r.logger.WithField("provider", preferred).Debug("preferred provider unavailable, using strategy")
		return ""
	}
	return preferred
}

// fallbackFor picks the other side of the remote/local pair. A remote provider that is
// not the default falls back to the default when local cannot be used.
func (r *router) fallbackFor(failed string) string {
	var candidate string
	switch {
	case failed == r.cfg.LocalProvider:
		candidate = r.cfg.DefaultProvider
	case r.localUsable():
		candidate = r.cfg.LocalProvider
	default:
		candidate = r.cfg.DefaultProvider
	}
	if candidate == failed || !r.usable(candidate) {
		return ""
	}
	return candidate
}

func (r *router) localUsable() bool {
	return r.cfg.LocalEnabled && r.backends[r.cfg.LocalProvider] != nil
}

func (r *router) usable(name string) bool {
	if name == r.cfg.LocalProvider {
		return r.localUsable()
	}
	return r.backends[name] != nil
}

type attempt struct {
	resp *providers.Response
	err  error
}

// invoke runs one attempt detached from the caller's cancellation and bounded by the router timeout.
func (r *router) invoke(ctx context.Context, name string, req providers.Request) (*providers.Response, error) {
	backend, ok := r.backends[name]
	if !ok || backend == nil {
		return nil, fmt.Errorf("%s: %w", name, errProviderNotRegistered)
	}

	attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.Timeout)
	defer cancel()

	start := r.now()
	done := make(chan attempt, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- attempt{err: fmt.Errorf("provider %s panicked: %v", name, p)}
			}
		}()
		resp, err := backend.Generate(attemptCtx, req)
		done <- attempt{resp: resp, err: err}
	}()

	var result attempt
	select {
	case result = <-done:
	case <-attemptCtx.Done():
		result = attempt{err: fmt.Errorf("%s: %w", name, errProviderTimeout)}
	}
	prometheus.ProviderLatency.WithLabelValues(name).Observe(float64(r.now().Sub(start).Milliseconds()))

	if result.err == nil && result.resp.IsBlank() {
		result.err = providers.ErrEmptyResponse
	}
	if result.err != nil {
		prometheus.ProviderRequestsTotal.WithLabelValues(name, prometheus.OutcomeFailure).Inc()
		return nil, result.err
	}
	prometheus.ProviderRequestsTotal.WithLabelValues(name, prometheus.OutcomeSuccess).Inc()

	if result.resp.Provider == "" {
		result.resp.Provider = name
	}
	return result.resp, nil
}

func (r *router) errorResponse() *providers.Response {
	return &providers.Response{
		Content:  r.errorReply,
		Provider: ProviderError,
		Model:    modelNone,
	}
}

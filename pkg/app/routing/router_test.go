package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const errorReply = "sorry, try again"

type mockBackend struct {
	mock.Mock
	name string
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{name: name}
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Generate(ctx context.Context, req providers.Request) (*providers.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*providers.Response) //nolint:errcheck
	return resp, args.Error(1)
}

type mockPreferences struct {
	mock.Mock
}

func (m *mockPreferences) PreferredProvider(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type funcBackend struct {
	name string
	fn   func(ctx context.Context) (*providers.Response, error)
}

func (f *funcBackend) Name() string { return f.name }

func (f *funcBackend) Generate(ctx context.Context, _ providers.Request) (*providers.Response, error) {
	return f.fn(ctx)
}

func routerConfig() config.RouterConfig {
	cfg := config.Default().Router
	cfg.DefaultProvider = "openai"
	cfg.LocalProvider = "local"
	cfg.LocalEnabled = true
	cfg.LocalPercentage = 0
	cfg.Timeout = time.Second
	return cfg
}

func reply(provider, content string) *providers.Response {
	return &providers.Response{Content: content, Provider: provider, Model: provider + "-model"}
}

func newTestRouter(cfg config.RouterConfig, backends map[string]providers.Backend, opts ...Option) Router {
	logger, _ := logrustest.NewNullLogger()
	return NewRouter(logger, cfg, errorReply, backends, nil, opts...)
}

func TestRoute_PrimarySucceeds(t *testing.T) {
	remote := newMockBackend("openai")
	local := newMockBackend("local")
	remote.On("Generate", mock.Anything, mock.Anything).Return(reply("openai", "hello"), nil).Once()

	r := newTestRouter(routerConfig(), map[string]providers.Backend{"openai": remote, "local": local})
	resp := r.Route(context.Background(), providers.Request{UserID: "u1", Message: "hi"})

	assert.Equal(t, "openai", resp.Provider)
	assert.Equal(t, "hello", resp.Content)
	remote.AssertNumberOfCalls(t, "Generate", 1)
	local.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestRoute_RemoteFailsLocalFallbackSucceeds(t *testing.T) {
	remote := newMockBackend("openai")
	local := newMockBackend("local")
	remote.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("503 from upstream"))
	local.On("Generate", mock.Anything, mock.Anything).Return(reply("local", "local reply"), nil)

	r := newTestRouter(routerConfig(), map[string]providers.Backend{"openai": remote, "local": local})
	resp := r.Route(context.Background(), providers.Request{UserID: "u1", Message: "hi"})

	assert.Equal(t, "local", resp.Provider)
	assert.Equal(t, "local reply", resp.Content)
	assert.Equal(t, "openai", resp.Metadata[providers.MetadataFallbackFrom])
	remote.AssertNumberOfCalls(t, "Generate", 1)
	local.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRoute_LocalFailsRemoteFallback(t *testing.T) {
	cfg := routerConfig()
	cfg.LocalPercentage = 100
	remote := newMockBackend("openai")
	local := newMockBackend("local")
	local.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("oom"))
	remote.On("Generate", mock.Anything, mock.Anything).Return(reply("openai", "remote reply"), nil)

	r := newTestRouter(cfg, map[string]providers.Backend{"openai": remote, "local": local})
	resp := r.Route(context.Background(), providers.Request{Message: "hi"})

	assert.Equal(t, "openai", resp.Provider)
	local.AssertNumberOfCalls(t, "Generate", 1)
	remote.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRoute_BothFailReturnsErrorSentinel(t *testing.T) {
	remote := newMockBackend("openai")
	local := newMockBackend("local")
	remote.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	local.On("Generate", mock.Anything, mock.Anything).Return(&providers.Response{Content: "   "}, nil)

	r := newTestRouter(routerConfig(), map[string]providers.Backend{"openai": remote, "local": local})
	resp := r.Route(context.Background(), providers.Request{Message: "hi"})

	require.NotNil(t, resp)
	assert.Equal(t, ProviderError, resp.Provider)
	assert.Equal(t, errorReply, resp.Content)
	remote.AssertNumberOfCalls(t, "Generate", 1)
	local.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRoute_DisabledLocalIsNeverAFallback(t *testing.T) {
	cfg := routerConfig()
	cfg.LocalEnabled = false
	remote := newMockBackend("openai")
	local := newMockBackend("local")
	remote.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	r := newTestRouter(cfg, map[string]providers.Backend{"openai": remote, "local": local})
	resp := r.Route(context.Background(), providers.Request{Message: "hi"})

	assert.Equal(t, ProviderError, resp.Provider)
	remote.AssertNumberOfCalls(t, "Generate", 1)
	local.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestRoute_NonDefaultRemoteFallsBackToDefaultWithoutLocal(t *testing.T) {
	cfg := routerConfig()
	cfg.LocalEnabled = false
	remote := newMockBackend("openai")
	anthropic := newMockBackend("anthropic")
	anthropic.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("overloaded"))
	remote.On("Generate", mock.Anything, mock.Anything).Return(reply("openai", "ok"), nil)

	r := newTestRouter(cfg, map[string]providers.Backend{"openai": remote, "anthropic": anthropic})
	resp := r.Route(context.Background(), providers.Request{
		Message: "hi",
		Context: user.Context{PreferredProvider: "anthropic"},
	})

	assert.Equal(t, "openai", resp.Provider)
	anthropic.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRoute_TimeoutCountsAsFailure(t *testing.T) {
	cfg := routerConfig()
	cfg.Timeout = 20 * time.Millisecond
	slow := &funcBackend{name: "openai", fn: func(ctx context.Context) (*providers.Response, error) {
		time.Sleep(200 * time.Millisecond)
		return reply("openai", "too late"), nil
	}}
	local := newMockBackend("local")
	local.On("Generate", mock.Anything, mock.Anything).Return(reply("local", "fast"), nil)

	r := newTestRouter(cfg, map[string]providers.Backend{"openai": slow, "local": local})
	resp := r.Route(context.Background(), providers.Request{Message: "hi"})

	assert.Equal(t, "local", resp.Provider)
}

func TestRoute_CallerCancellationDoesNotAbortAttempt(t *testing.T) {
	var sawErr error
	remote := &funcBackend{name: "openai", fn: func(ctx context.Context) (*providers.Response, error) {
		sawErr = ctx.Err()
		_, hasDeadline := ctx.Deadline()
		if !hasDeadline {
			return nil, errors.New("missing attempt deadline")
		}
		return reply("openai", "still answered"), nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newTestRouter(routerConfig(), map[string]providers.Backend{"openai": remote})
	resp := r.Route(ctx, providers.Request{Message: "hi"})

	assert.NoError(t, sawErr)
	assert.Equal(t, "still answered", resp.Content)
}

func TestRoute_PanickingBackendFallsBack(t *testing.T) {
	remote := &funcBackend{name: "openai", fn: func(context.Context) (*providers.Response, error) {
		panic("nil map")
	}}
	local := newMockBackend("local")
	local.On("Generate", mock.Anything, mock.Anything).Return(reply("local", "ok"), nil)

	r := newTestRouter(routerConfig(), map[string]providers.Backend{"openai": remote, "local": local})
	resp := r.Route(context.Background(), providers.Request{Message: "hi"})

	assert.Equal(t, "local", resp.Provider)
}

func TestRoute_FillsMissingProviderName(t *testing.T) {
	remote := newMockBackend("openai")
	remote.On("Generate", mock.Anything, mock.Anything).Return(&providers.Response{Content: "hey"}, nil)

	r := newTestRouter(routerConfig(), map[string]providers.Backend{"openai": remote})
	resp := r.Route(context.Background(), providers.Request{Message: "hi"})

	assert.Equal(t, "openai", resp.Provider)
}

func TestSelectProvider_Preference(t *testing.T) {
	backends := map[string]providers.Backend{
		"openai":    newMockBackend("openai"),
		"anthropic": newMockBackend("anthropic"),
		"local":     newMockBackend("local"),
	}
	logger, _ := logrustest.NewNullLogger()

	t.Run("explicit preference from context", func(t *testing.T) {
		r := NewRouter(logger, routerConfig(), errorReply, backends, nil).(*router) //nolint:errcheck
		got := r.selectProvider(context.Background(), providers.Request{Context: user.Context{PreferredProvider: "anthropic"}})
		assert.Equal(t, "anthropic", got)
	})

	t.Run("preference from repository", func(t *testing.T) {
		prefs := &mockPreferences{}
		prefs.On("PreferredProvider", mock.Anything, "u1").Return("local", nil)
		r := NewRouter(logger, routerConfig(), errorReply, backends, prefs).(*router) //nolint:errcheck
		got := r.selectProvider(context.Background(), providers.Request{UserID: "u1"})
		assert.Equal(t, "local", got)
		prefs.AssertExpectations(t)
	})

	t.Run("auto preference uses strategy", func(t *testing.T) {
		r := NewRouter(logger, routerConfig(), errorReply, backends, nil).(*router) //nolint:errcheck
		got := r.selectProvider(context.Background(), providers.Request{Context: user.Context{PreferredProvider: user.ProviderAuto}})
		assert.Equal(t, "openai", got)
	})

	t.Run("unknown preference uses strategy", func(t *testing.T) {
		r := NewRouter(logger, routerConfig(), errorReply, backends, nil).(*router) //nolint:errcheck
		got := r.selectProvider(context.Background(), providers.Request{Context: user.Context{PreferredProvider: "mistral"}})
		assert.Equal(t, "openai", got)
	})

	t.Run("repository error uses strategy", func(t *testing.T) {
		prefs := &mockPreferences{}
		prefs.On("PreferredProvider", mock.Anything, "u1").Return("", errors.New("db down"))
		r := NewRouter(logger, routerConfig(), errorReply, backends, prefs).(*router) //nolint:errcheck
		got := r.selectProvider(context.Background(), providers.Request{UserID: "u1"})
		assert.Equal(t, "openai", got)
	})
}

func TestSelectProvider_RoundRobin(t *testing.T) {
	cfg := routerConfig()
	cfg.Strategy = config.StrategyRoundRobin
	backends := map[string]providers.Backend{"openai": newMockBackend("openai"), "local": newMockBackend("local")}
	logger, _ := logrustest.NewNullLogger()

	even := time.Unix(1700000000, 0)
	odd := time.Unix(1700000001, 0)

	r := NewRouter(logger, cfg, errorReply, backends, nil, WithClock(func() time.Time { return even })).(*router) //nolint:errcheck
	assert.Equal(t, "local", r.selectProvider(context.Background(), providers.Request{}))

	r = NewRouter(logger, cfg, errorReply, backends, nil, WithClock(func() time.Time { return odd })).(*router) //nolint:errcheck
	assert.Equal(t, "openai", r.selectProvider(context.Background(), providers.Request{}))

	cfg.LocalEnabled = false
	r = NewRouter(logger, cfg, errorReply, backends, nil, WithClock(func() time.Time { return even })).(*router) //nolint:errcheck
	assert.Equal(t, "openai", r.selectProvider(context.Background(), providers.Request{}))
}

func TestSelectProvider_Auto(t *testing.T) {
	backends := map[string]providers.Backend{"openai": newMockBackend("openai"), "local": newMockBackend("local")}
	logger, _ := logrustest.NewNullLogger()
	detailed := user.Profile{"age_range": "25-34", "primary_concern": "anxiety", "support_goal": "sleep"}

	tests := []struct {
		name     string
		mutate   func(*config.RouterConfig)
		profile  user.Profile
		random   float64
		expected string
	}{
		{name: "default remote", random: 0.99, expected: "openai"},
		{
			name:     "detailed profile prefers local",
			mutate:   func(c *config.RouterConfig) { c.PreferLocalWhenDetailed = true },
			profile:  detailed,
			random:   0.99,
			expected: "local",
		},
		{
			name:     "partial profile is not detailed",
			mutate:   func(c *config.RouterConfig) { c.PreferLocalWhenDetailed = true },
			profile:  user.Profile{"age_range": "25-34"},
			random:   0.99,
			expected: "openai",
		},
		{
			name:     "percentage hit",
			mutate:   func(c *config.RouterConfig) { c.LocalPercentage = 30 },
			random:   0.29,
			expected: "local",
		},
		{
			name:     "percentage miss",
			mutate:   func(c *config.RouterConfig) { c.LocalPercentage = 30 },
			random:   0.30,
			expected: "openai",
		},
		{
			name: "local disabled wins over everything",
			mutate: func(c *config.RouterConfig) {
				c.LocalEnabled = false
				c.LocalPercentage = 100
				c.PreferLocalWhenDetailed = true
			},
			profile:  detailed,
			random:   0,
			expected: "openai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := routerConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			random := tt.random
			r := NewRouter(logger, cfg, errorReply, backends, nil, WithRandom(func() float64 { return random })).(*router) //nolint:errcheck

			got := r.selectProvider(context.Background(), providers.Request{Context: user.Context{Profile: tt.profile}})
			assert.Equal(t, tt.expected, got)
		})
	}
}

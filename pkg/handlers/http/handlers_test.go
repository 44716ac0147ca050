package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/SafeChat/pkg/app/chat"
	"github.com/NeuralTrust/SafeChat/pkg/app/resources"
	appUser "github.com/NeuralTrust/SafeChat/pkg/app/user"
	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/domain"
	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/domain/notification"
	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
	"github.com/NeuralTrust/SafeChat/pkg/domain/toggle"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, req chat.Request) *chat.Response {
	return m.Called(ctx, req).Get(0).(*chat.Response) //nolint:errcheck
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Find(ctx context.Context, language, region string) ([]crisis.Resource, error) {
	args := m.Called(ctx, language, region)
	res, _ := args.Get(0).([]crisis.Resource) //nolint:errcheck
	return res, args.Error(1)
}

type mockPreferencesUpdater struct {
	mock.Mock
}

func (m *mockPreferencesUpdater) Update(ctx context.Context, userID string, prefs user.Preferences) error {
	return m.Called(ctx, userID, prefs).Error(0)
}

type mockToggleUpdater struct {
	mock.Mock
}

func (m *mockToggleUpdater) Set(ctx context.Context, name string, enabled bool) (*toggle.FeatureToggle, error) {
	args := m.Called(ctx, name, enabled)
	t, _ := args.Get(0).(*toggle.FeatureToggle) //nolint:errcheck
	return t, args.Error(1)
}

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) Create(ctx context.Context, r *crisis.Resource) error {
	return m.Called(ctx, r).Error(0)
}

type mockFlags struct {
	mock.Mock
}

func (m *mockFlags) ListRecent(ctx context.Context, limit int) ([]crisis.Flag, error) {
	args := m.Called(ctx, limit)
	flags, _ := args.Get(0).([]crisis.Flag) //nolint:errcheck
	return flags, args.Error(1)
}

type mockInbox struct {
	mock.Mock
}

func (m *mockInbox) List(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, limit)
	items, _ := args.Get(0).([]notification.Notification) //nolint:errcheck
	return items, args.Error(1)
}

var testUserID = uuid.MustParse("0b6f5c1e-8a7d-4a47-9d64-4b8f3e2c1a00")

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(string(common.UserIDContextKey), testUserID.String())
		return c.Next()
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSendMessageHandler(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	sender := new(mockSender)
	app := newApp()
	app.Post("/api/v1/conversations/:conversation_id/messages", NewSendMessageHandler(logger, sender).Handle)

	sender.On("Send", mock.Anything, chat.Request{
		ConversationID: "conv-1",
		UserID:         testUserID.String(),
		Message:        "I want to end it all",
	}).Return(&chat.Response{
		Content:       "I'm here with you.",
		Provider:      "openai",
		RiskLevel:     risk.High,
		CrisisFlagged: true,
	})

	resp := do(t, app, http.MethodPost, "/api/v1/conversations/conv-1/messages", map[string]string{"message": "  I want to end it all "})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got map[string]interface{}
	decode(t, resp, &got)
	assert.Equal(t, "HIGH", got["risk_level"])
	assert.Equal(t, true, got["crisis_flagged"])
	assert.NotContains(t, got, "ReviewRequired")
}

func TestSendMessageHandler_InvalidBody(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	sender := new(mockSender)
	app := newApp()
	app.Post("/c/:conversation_id", NewSendMessageHandler(logger, sender).Handle)

	resp := do(t, app, http.MethodPost, "/c/conv-1", map[string]string{"message": " "})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestGetCrisisResourcesHandler(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()

	t.Run("query params", func(t *testing.T) {
		catalog := new(mockCatalog)
		catalog.On("Find", mock.Anything, "es", "ES").Return([]crisis.Resource{{Name: "024"}}, nil)
		app := newApp()
		app.Get("/r", NewGetCrisisResourcesHandler(logger, catalog).Handle)

		resp := do(t, app, http.MethodGet, "/r?language=es&region=ES", nil)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var got []crisis.Resource
		decode(t, resp, &got)
		assert.Equal(t, "024", got[0].Name)
	})

	t.Run("accept language", func(t *testing.T) {
		catalog := new(mockCatalog)
		catalog.On("Find", mock.Anything, "en", "GB").Return([]crisis.Resource{{Name: "Samaritans"}}, nil)
		app := newApp()
		app.Get("/r", NewGetCrisisResourcesHandler(logger, catalog).Handle)

		req := httptest.NewRequest(http.MethodGet, "/r", nil)
		req.Header.Set("Accept-Language", "en-GB,en;q=0.9")
		resp, err := app.Test(req)

		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		catalog.AssertExpectations(t)
	})

	t.Run("catalog failure serves defaults", func(t *testing.T) {
		catalog := new(mockCatalog)
		catalog.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
		app := newApp()
		app.Get("/r", NewGetCrisisResourcesHandler(logger, catalog).Handle)

		resp := do(t, app, http.MethodGet, "/r?language=fr", nil)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var got []crisis.Resource
		decode(t, resp, &got)
		assert.Len(t, got, len(crisis.DefaultResources()))
	})
}

func TestUpdatePreferencesHandler(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	tests := []struct {
		name   string
		body   map[string]string
		err    error
		status int
	}{
		{name: "ok", body: map[string]string{"preferred_provider": "anthropic"}, status: fiber.StatusNoContent},
		{name: "unknown provider", body: map[string]string{"preferred_provider": "x"}, err: appUser.ErrUnknownProvider, status: fiber.StatusBadRequest},
		{name: "missing user", body: map[string]string{"language": "es"}, err: domain.NewNotFoundError("user", testUserID), status: fiber.StatusNotFound},
		{name: "storage", body: map[string]string{"language": "es"}, err: errors.New("db down"), status: fiber.StatusInternalServerError},
		{name: "empty", body: map[string]string{}, status: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updater := new(mockPreferencesUpdater)
			updater.On("Update", mock.Anything, testUserID.String(), mock.Anything).Return(tt.err)
			app := newApp()
			app.Put("/p", NewUpdatePreferencesHandler(logger, updater).Handle)

			resp := do(t, app, http.MethodPut, "/p", tt.body)

			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestUpdateToggleHandler(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	updater := new(mockToggleUpdater)
	updater.On("Set", mock.Anything, toggle.CrisisAlertsEnabled, false).
		Return(&toggle.FeatureToggle{Name: toggle.CrisisAlertsEnabled, Enabled: false}, nil)
	app := newApp()
	app.Put("/t/:name", NewUpdateToggleHandler(logger, updater).Handle)

	resp := do(t, app, http.MethodPut, "/t/"+toggle.CrisisAlertsEnabled, map[string]bool{"enabled": false})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPut, "/t/"+toggle.CrisisAlertsEnabled, map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateResourceHandler(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()

	creator := new(mockCreator)
	creator.On("Create", mock.Anything, mock.MatchedBy(func(r *crisis.Resource) bool { return r.Phone == "988" })).Return(nil)
	creator.On("Create", mock.Anything, mock.Anything).Return(resources.ErrInvalidResource)
	app := newApp()
	app.Post("/r", NewCreateResourceHandler(logger, creator).Handle)

	resp := do(t, app, http.MethodPost, "/r", map[string]interface{}{"name": "988 Lifeline", "phone": "988", "language": "en", "region": "US"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/r", map[string]interface{}{"name": "No contact"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListCrisisFlagsHandler(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	flags := new(mockFlags)
	flags.On("ListRecent", mock.Anything, 10).Return([]crisis.Flag{{ConversationID: "c1", Keyword: "end it all"}}, nil)
	flags.On("ListRecent", mock.Anything, maxListLimit).Return(nil, errors.New("db down"))
	app := newApp()
	app.Get("/f", NewListCrisisFlagsHandler(logger, flags).Handle)

	resp := do(t, app, http.MethodGet, "/f?limit=10", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got []crisis.Flag
	decode(t, resp, &got)
	assert.Equal(t, "c1", got[0].ConversationID)

	resp = do(t, app, http.MethodGet, "/f?limit=100000", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestListNotificationsHandler(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	inbox := new(mockInbox)
	inbox.On("List", mock.Anything, testUserID, defaultListLimit).
		Return([]notification.Notification{{Kind: notification.KindCrisisAlert}}, nil)
	app := newApp()
	app.Get("/n", NewListNotificationsHandler(logger, inbox).Handle)

	resp := do(t, app, http.MethodGet, "/n", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	inbox.AssertExpectations(t)
}

func TestGetVersionHandler(t *testing.T) {
	app := newApp()
	app.Get("/version", NewGetVersionHandler().Handle)

	resp := do(t, app, http.MethodGet, "/version", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got map[string]string
	decode(t, resp, &got)
	assert.Equal(t, "SafeChat", got["app_name"])
}

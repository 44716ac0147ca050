package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/go-redis/redismock/v8"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	received []event.ToggleUpdatedEvent
	err      error
}

func (s *recordingSubscriber) OnEvent(_ context.Context, evt event.ToggleUpdatedEvent) error {
	s.received = append(s.received, evt)
	return s.err
}

func envelope(t *testing.T, ev event.Event) string {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	data, err := json.Marshal(Envelope{Type: ev.Type(), Event: b})
	require.NoError(t, err)
	return string(data)
}

func TestRedisEventPublisher_WrapsEventInEnvelope(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	publisher := NewRedisEventPublisher(NewClientFromRedis(redisClient))
	ev := event.ToggleUpdatedEvent{Name: "crisis_alerts_enabled", Enabled: false}

	mock.ExpectPublish(string(channel.CacheEventsChannel), envelope(t, ev)).SetVal(1)

	require.NoError(t, publisher.Publish(context.Background(), channel.CacheEventsChannel, ev))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisEventListener_DispatchesByType(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	redisClient, _ := redismock.NewClientMock()
	listener := NewRedisEventListener(logger, NewClientFromRedis(redisClient), event.Registry)
	sub := &recordingSubscriber{}
	RegisterEventSubscriber[event.ToggleUpdatedEvent](listener, sub)

	l, ok := listener.(*redisEventListener)
	require.True(t, ok)

	l.handleMessage(context.Background(), envelope(t, event.ToggleUpdatedEvent{Name: "crisis_alerts_enabled", Enabled: true}))
	l.handleMessage(context.Background(), envelope(t, event.ResourcesUpdatedEvent{Language: "en"}))

	require.Len(t, sub.received, 1)
	assert.Equal(t, "crisis_alerts_enabled", sub.received[0].Name)
	assert.True(t, sub.received[0].Enabled)
}

func TestRedisEventListener_IgnoresBadPayloads(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	redisClient, _ := redismock.NewClientMock()
	listener := NewRedisEventListener(logger, NewClientFromRedis(redisClient), event.Registry)
	sub := &recordingSubscriber{err: errors.New("boom")}
	RegisterEventSubscriber[event.ToggleUpdatedEvent](listener, sub)
	l := listener.(*redisEventListener) //nolint:forcetypeassert

	l.handleMessage(context.Background(), "not json")
	l.handleMessage(context.Background(), `{"type":"SomethingElse","event":{}}`)
	l.handleMessage(context.Background(), envelope(t, event.ToggleUpdatedEvent{Name: "x"}))

	assert.Len(t, sub.received, 1)
	assert.GreaterOrEqual(t, len(hook.AllEntries()), 3)
}

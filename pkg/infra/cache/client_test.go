package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferredProvider_RoundTrip(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	c := NewClientFromRedis(redisClient)
	ctx := context.Background()

	mock.ExpectSet("user:u-1:preferred_provider", "anthropic", PreferredProviderTTL).SetVal("OK")
	mock.ExpectGet("user:u-1:preferred_provider").SetVal("anthropic")

	require.NoError(t, c.SavePreferredProvider(ctx, "u-1", "anthropic"))
	got, err := c.GetPreferredProvider(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_MissIsDetectable(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	c := NewClientFromRedis(redisClient)

	mock.ExpectGet("user:u-2:preferred_provider").RedisNil()

	_, err := c.GetPreferredProvider(context.Background(), "u-2")
	assert.True(t, IsMiss(err))
	assert.False(t, IsMiss(errors.New("connection refused")))
}

func TestDelete(t *testing.T) {
	redisClient, mock := redismock.NewClientMock()
	c := NewClientFromRedis(redisClient)

	mock.ExpectDel("some-key").SetVal(1)

	assert.NoError(t, c.Delete(context.Background(), "some-key"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTTLMaps_AreRegisteredByName(t *testing.T) {
	redisClient, _ := redismock.NewClientMock()
	c := NewClientFromRedis(redisClient)

	toggles := c.CreateTTLMap(ToggleTTLName, PreferredProviderTTL)
	toggles.Set("crisis_alerts_enabled", true)

	assert.Same(t, toggles, c.GetTTLMap(ToggleTTLName))
	assert.Nil(t, c.GetTTLMap("unknown"))

	c.ClearAllTTLMaps()
	_, ok := toggles.Get("crisis_alerts_enabled")
	assert.False(t, ok)
}

package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/KirkDiggler/rpg-story/internal/redis"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redisclient.NewClient(mr.Addr(), nil)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, redisclient.Ping(context.Background(), client))

	require.NoError(t, client.Set(context.Background(), "story:1", "{}", 0).Err())
	_, err = client.Get(context.Background(), "story:missing").Result()
	assert.ErrorIs(t, err, redisclient.Nil)
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := redisclient.NewClient("", nil)
	assert.Error(t, err)
}

func TestPingUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := redisclient.NewClient(addr, &redisclient.Options{MaxRetries: -1})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.Error(t, redisclient.Ping(context.Background(), client))
}

// Package testutils provides shared test helpers and story fixtures
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-story/internal/redis"
)

// CreateTestRedisClient starts an in-memory redis and returns a client for it.
// The server is closed when the test ends. The miniredis handle lets tests
// inspect keys and fast-forward TTLs.
func CreateTestRedisClient(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}

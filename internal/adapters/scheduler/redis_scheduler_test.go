package scheduler

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridehq/stride-engine/internal/adapters/cache"
	"github.com/stridehq/stride-engine/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestRedisScheduler_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		getEnv("REDIS_PASSWORD", "secret_redis_pass_local"),
		1,
	)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err(), "Failed to flush test DB")

	s := NewRedisScheduler(rdb)

	points := []domain.FirePoint{
		{Identifier: "habit-redis-0", HabitID: "habit-redis", Hour: 9, Minute: 0, Title: "TIME FOR WATER", Body: "Don't break your streak!"},
		{Identifier: "habit-redis-1", HabitID: "habit-redis", Hour: 10, Minute: 0, Title: "TIME FOR WATER", Body: "Don't break your streak!"},
	}

	t.Run("Schedule stores fire points under the habit hash", func(t *testing.T) {
		require.NoError(t, s.Schedule(ctx, points))

		pending, err := s.Pending(ctx, "habit-redis")
		assert.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("Round-trips fields intact", func(t *testing.T) {
		pending, err := s.Pending(ctx, "habit-redis")
		require.NoError(t, err)

		byID := make(map[string]domain.FirePoint)
		for _, p := range pending {
			byID[p.Identifier] = p
		}
		got := byID["habit-redis-1"]
		assert.Equal(t, 10, got.Hour)
		assert.Equal(t, "TIME FOR WATER", got.Title)
	})

	t.Run("Cancel sweeps the habit's identifier range", func(t *testing.T) {
		require.NoError(t, s.Cancel(ctx, domain.CancelIdentifiers("habit-redis")))

		pending, err := s.Pending(ctx, "habit-redis")
		assert.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("Scheduling nothing is a no-op", func(t *testing.T) {
		assert.NoError(t, s.Schedule(ctx, nil))
		assert.NoError(t, s.Cancel(ctx, nil))
	})
}

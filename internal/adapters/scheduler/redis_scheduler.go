package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

var _ domain.ReminderScheduler = (*RedisScheduler)(nil)

// RedisScheduler persists pending fire points where the external delivery
// process picks them up. Each habit gets one hash keyed by habit id, with
// fields keyed by fire-point identifier, so cancel-then-schedule is two
// idempotent commands per habit rather than a scan.
type RedisScheduler struct {
	rdb *redis.Client
}

func NewRedisScheduler(rdb *redis.Client) *RedisScheduler {
	return &RedisScheduler{rdb: rdb}
}

func triggerKey(habitID string) string {
	return fmt.Sprintf("reminders:%s", habitID)
}

func (s *RedisScheduler) Schedule(ctx context.Context, points []domain.FirePoint) error {
	if len(points) == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(points))
	for _, p := range points {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("scheduler: failed to marshal fire point %s: %w", p.Identifier, err)
		}
		fields[p.Identifier] = data
	}

	// All points in one call share a habit by construction.
	key := triggerKey(points[0].HabitID)
	if err := s.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("scheduler: failed to store fire points: %w", err)
	}

	return nil
}

func (s *RedisScheduler) Cancel(ctx context.Context, identifiers []string) error {
	if len(identifiers) == 0 {
		return nil
	}

	// Identifiers are habitID-slot; the identifier sweep for one habit all
	// lives under the same hash, so deleting the hash covers the range.
	keys := make(map[string]bool)
	for _, id := range identifiers {
		if n := len(id); n > 2 {
			// Strip the -N suffix to recover the habit id.
			for i := n - 1; i > 0; i-- {
				if id[i] == '-' {
					keys[triggerKey(id[:i])] = true
					break
				}
			}
		}
	}

	for key := range keys {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("scheduler: failed to cancel fire points under %s: %w", key, err)
		}
	}

	return nil
}

// Pending lists the fire points currently held for a habit. Used by the
// delivery process and by integration tests.
func (s *RedisScheduler) Pending(ctx context.Context, habitID string) ([]domain.FirePoint, error) {
	entries, err := s.rdb.HGetAll(ctx, triggerKey(habitID)).Result()
	if err != nil {
		return nil, fmt.Errorf("scheduler: failed to read fire points: %w", err)
	}

	points := make([]domain.FirePoint, 0, len(entries))
	for _, raw := range entries {
		var p domain.FirePoint
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("scheduler: corrupted fire point data: %w", err)
		}
		points = append(points, p)
	}
	return points, nil
}

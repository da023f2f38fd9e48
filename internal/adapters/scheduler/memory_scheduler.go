package scheduler

import (
	"context"
	"sync"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

var _ domain.ReminderScheduler = (*InMemoryScheduler)(nil)

// InMemoryScheduler holds fire points in a map. It backs tests and the
// no-redis development mode.
type InMemoryScheduler struct {
	points map[string]domain.FirePoint

	mu sync.RWMutex
}

func NewInMemoryScheduler() *InMemoryScheduler {
	return &InMemoryScheduler{
		points: make(map[string]domain.FirePoint),
	}
}

func (s *InMemoryScheduler) Schedule(ctx context.Context, points []domain.FirePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range points {
		s.points[p.Identifier] = p
	}
	return nil
}

func (s *InMemoryScheduler) Cancel(ctx context.Context, identifiers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range identifiers {
		delete(s.points, id)
	}
	return nil
}

// Pending returns the fire points currently held for a habit, unordered.
func (s *InMemoryScheduler) Pending(habitID string) []domain.FirePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.FirePoint
	for _, p := range s.points {
		if p.HabitID == habitID {
			out = append(out, p)
		}
	}
	return out
}

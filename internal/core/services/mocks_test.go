package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

// fixedClock pins "now" so date keys and weekday ordinals are deterministic.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// monday is the shared test instant: 2025-06-02 is a Monday (weekday 2).
var monday = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type MockHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
}

func NewMockHabitRepo() *MockHabitRepo {
	return &MockHabitRepo{
		store: make(map[string]*domain.Habit),
	}
}

func cloneHabit(h *domain.Habit) *domain.Habit {
	clone := *h
	clone.ScheduledDays = append([]int(nil), h.ScheduledDays...)
	clone.SkippedDays = append([]string(nil), h.SkippedDays...)
	clone.CompletionHistory = make(map[string]int, len(h.CompletionHistory))
	for k, v := range h.CompletionHistory {
		clone.CompletionHistory[k] = v
	}
	return &clone
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(h), nil
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID {
			list = append(list, cloneHabit(h))
		}
	}
	return list, nil
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	m.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(m.store, id)
	return nil
}

type MockStatsRepo struct {
	store         map[string]*domain.UserStats
	simulateError error
}

func NewMockStatsRepo() *MockStatsRepo {
	return &MockStatsRepo{
		store: make(map[string]*domain.UserStats),
	}
}

func cloneStats(s *domain.UserStats) *domain.UserStats {
	clone := *s
	clone.UnlockedBadges = append([]string(nil), s.UnlockedBadges...)
	return &clone
}

func (m *MockStatsRepo) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	s, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	return cloneStats(s), nil
}

func (m *MockStatsRepo) Create(ctx context.Context, stats *domain.UserStats) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.store[stats.UserID] = cloneStats(stats)
	return nil
}

func (m *MockStatsRepo) Update(ctx context.Context, stats *domain.UserStats) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.store[stats.UserID] = cloneStats(stats)
	return nil
}

// MockScheduler records schedule and cancel calls instead of talking to a
// notification backend.
type MockScheduler struct {
	mu        sync.Mutex
	pending   map[string]domain.FirePoint
	cancelled []string
}

func NewMockScheduler() *MockScheduler {
	return &MockScheduler{
		pending: make(map[string]domain.FirePoint),
	}
}

func (m *MockScheduler) Schedule(ctx context.Context, points []domain.FirePoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range points {
		m.pending[p.Identifier] = p
	}
	return nil
}

func (m *MockScheduler) Cancel(ctx context.Context, identifiers []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range identifiers {
		delete(m.pending, id)
	}
	m.cancelled = append(m.cancelled, identifiers...)
	return nil
}

func (m *MockScheduler) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

// In-memory repositories back tests and local development. They deep-copy on
// the way in and out so callers never share mutable state with the store,
// matching the isolation a real database gives.

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

func cloneStats(s *domain.UserStats) *domain.UserStats {
	clone := *s
	clone.UnlockedBadges = append([]string(nil), s.UnlockedBadges...)
	return &clone
}

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(habit), nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			habits = append(habits, cloneHabit(h))
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	r.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemoryStatsRepository struct {
	store map[string]*domain.UserStats

	mu sync.RWMutex
}

func NewInMemoryStatsRepository() *InMemoryStatsRepository {
	return &InMemoryStatsRepository{
		store: make(map[string]*domain.UserStats),
	}
}

func (r *InMemoryStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	return cloneStats(stats), nil
}

func (r *InMemoryStatsRepository) Create(ctx context.Context, stats *domain.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[stats.UserID] = cloneStats(stats)
	return nil
}

func (r *InMemoryStatsRepository) Update(ctx context.Context, stats *domain.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[stats.UserID]; !ok {
		return domain.ErrStatsNotFound
	}

	r.store[stats.UserID] = cloneStats(stats)
	return nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

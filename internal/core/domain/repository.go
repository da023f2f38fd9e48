package domain

import (
	"context"
	"errors"
)

// Ownership failures are reported as ErrHabitNotFound on purpose: a caller
// probing someone else's ids must not learn that they exist.
var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrStatsNotFound = errors.New("user stats not found")
)

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves every habit of a user, archived ones included,
	// ordered by sort_order.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update writes back the full habit state.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit. Callers must cancel any pending
	// reminder fire points first.
	Delete(ctx context.Context, id string) error
}

type StatsRepository interface {
	// GetByUserID returns the user's ledger or ErrStatsNotFound.
	GetByUserID(ctx context.Context, userID string) (*UserStats, error)

	Create(ctx context.Context, stats *UserStats) error

	Update(ctx context.Context, stats *UserStats) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

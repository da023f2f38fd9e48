package services

import (
	"context"
	"fmt"

	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/workers"
)

type HabitService struct {
	repo      domain.HabitRepository
	stats     domain.StatsRepository
	reminders *ReminderService
	worker    *workers.ReminderWorker
	clock     domain.Clock
}

func NewHabitService(repo domain.HabitRepository, stats domain.StatsRepository, reminders *ReminderService, worker *workers.ReminderWorker, clock domain.Clock) *HabitService {
	return &HabitService{
		repo:      repo,
		stats:     stats,
		reminders: reminders,
		worker:    worker,
		clock:     clock,
	}
}

type CreateHabitInput struct {
	UserID    string
	Name      string
	Icon      string
	Category  string
	ColorName string
	Goal      int

	ScheduledDays []int
	SortOrder     int

	IsTimerHabit         bool
	TimerDurationMinutes int

	ReminderEnabled bool
	ReminderType    string
	IntervalMinutes int
	IntervalCount   int
	StartTime       string
}

type UpdateHabitInput struct {
	ID     string
	UserID string

	Name      string
	Icon      string
	Category  string
	ColorName string
	Goal      int

	ScheduledDays []int

	IsTimerHabit         bool
	TimerDurationMinutes int

	ReminderEnabled bool
	ReminderType    string
	IntervalMinutes int
	IntervalCount   int
	StartTime       string
}

// checkColorGate enforces the level-gated color catalog: a color above the
// user's current level cannot be picked.
func (s *HabitService) checkColorGate(ctx context.Context, userID, color string) error {
	if color == "" {
		return nil
	}

	required := domain.ColorMinLevel(color)
	if required < 0 {
		return domain.ErrInvalidColor
	}
	if required <= 1 {
		return nil
	}

	stats, err := s.stats.GetByUserID(ctx, userID)
	if err == domain.ErrStatsNotFound {
		return fmt.Errorf("%w: level %d needed", domain.ErrColorLocked, required)
	}
	if err != nil {
		return err
	}
	if stats.Level() < required {
		return fmt.Errorf("%w: level %d needed", domain.ErrColorLocked, required)
	}
	return nil
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	if err := s.checkColorGate(ctx, input.UserID, input.ColorName); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Icon, input.Category, input.ColorName, input.Goal, input.ScheduledDays, now)
	if err != nil {
		return nil, err
	}
	habit.SortOrder = input.SortOrder

	if input.IsTimerHabit || input.ReminderEnabled {
		err = habit.Update(domain.HabitUpdate{
			Name:                 habit.Name,
			Icon:                 habit.Icon,
			Category:             habit.Category,
			ColorName:            habit.ColorName,
			Goal:                 habit.Goal,
			ScheduledDays:        habit.ScheduledDays,
			IsTimerHabit:         input.IsTimerHabit,
			TimerDurationMinutes: input.TimerDurationMinutes,
			ReminderEnabled:      input.ReminderEnabled,
			ReminderType:         input.ReminderType,
			IntervalMinutes:      input.IntervalMinutes,
			IntervalCount:        input.IntervalCount,
			StartTime:            input.StartTime,
		}, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	if habit.ReminderEnabled && s.worker != nil {
		s.worker.Enqueue(habit.ID)
	}

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.ColorName != habit.ColorName {
		if err := s.checkColorGate(ctx, input.UserID, input.ColorName); err != nil {
			return nil, err
		}
	}

	err = habit.Update(domain.HabitUpdate{
		Name:                 input.Name,
		Icon:                 input.Icon,
		Category:             input.Category,
		ColorName:            input.ColorName,
		Goal:                 input.Goal,
		ScheduledDays:        input.ScheduledDays,
		IsTimerHabit:         input.IsTimerHabit,
		TimerDurationMinutes: input.TimerDurationMinutes,
		ReminderEnabled:      input.ReminderEnabled,
		ReminderType:         input.ReminderType,
		IntervalMinutes:      input.IntervalMinutes,
		IntervalCount:        input.IntervalCount,
		StartTime:            input.StartTime,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	// The schedule depends on reminder config and goal, both of which may
	// just have changed.
	if s.worker != nil {
		s.worker.Enqueue(habit.ID)
	}

	return habit, nil
}

func (s *HabitService) Archive(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	habit.Archive(s.clock.Now())
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	// Archived habits are excluded from reminders.
	if err := s.reminders.CancelAll(ctx, habit.ID); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	habit.Restore(s.clock.Now())
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	if habit.ReminderEnabled && s.worker != nil {
		s.worker.Enqueue(habit.ID)
	}

	return habit, nil
}

// Reorder persists the display order given as the full list of habit ids in
// their new positions. Ids not owned by the user are rejected wholesale.
func (s *HabitService) Reorder(ctx context.Context, userID string, orderedIDs []string) error {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}

	byID := make(map[string]*domain.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	now := s.clock.Now()
	for pos, id := range orderedIDs {
		habit, ok := byID[id]
		if !ok {
			return domain.ErrHabitNotFound
		}
		if habit.SortOrder == pos {
			continue
		}
		if err := habit.ChangePosition(pos, now); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, habit); err != nil {
			return err
		}
	}

	return nil
}

// Delete hard-deletes a habit. Pending fire points are cancelled first so the
// external notification system never fires for a habit that no longer exists.
func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.reminders.CancelAll(ctx, habit.ID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, habit.ID)
}

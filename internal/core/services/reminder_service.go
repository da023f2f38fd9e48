package services

import (
	"context"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

// ReminderService computes and maintains the reminder schedules the external
// notification system should hold for a user's habits. Regeneration always
// invalidates the habit's full identifier range before issuing new fire
// points, so a shrunk schedule leaves no stale leftovers behind.
type ReminderService struct {
	habits    domain.HabitRepository
	scheduler domain.ReminderScheduler
}

func NewReminderService(habits domain.HabitRepository, scheduler domain.ReminderScheduler) *ReminderService {
	return &ReminderService{
		habits:    habits,
		scheduler: scheduler,
	}
}

func (s *ReminderService) loadOwned(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

// Preview returns the fire points the habit would have scheduled right now,
// without touching the scheduler.
func (s *ReminderService) Preview(ctx context.Context, habitID, userID string) ([]domain.FirePoint, error) {
	habit, err := s.loadOwned(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	return domain.BuildSchedule(habit), nil
}

// Refresh cancels every fire point the habit could have claimed and schedules
// the current set. A satisfied or reminder-disabled habit ends up with none.
func (s *ReminderService) Refresh(ctx context.Context, habitID, userID string) ([]domain.FirePoint, error) {
	habit, err := s.loadOwned(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.scheduler.Cancel(ctx, domain.CancelIdentifiers(habit.ID)); err != nil {
		return nil, err
	}

	points := domain.BuildSchedule(habit)
	if len(points) == 0 {
		return []domain.FirePoint{}, nil
	}

	if err := s.scheduler.Schedule(ctx, points); err != nil {
		return nil, err
	}

	return points, nil
}

// CancelAll removes every pending fire point for the habit. Called on hard
// delete and archive.
func (s *ReminderService) CancelAll(ctx context.Context, habitID string) error {
	return s.scheduler.Cancel(ctx, domain.CancelIdentifiers(habitID))
}

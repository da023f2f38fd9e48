package services

import (
	"context"
	"fmt"

	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/workers"
)

// TrackerService applies completion events to a single habit and feeds the
// resulting state through streak and badge evaluation. Every operation is
// total over well-formed habits: incrementing past the goal or decrementing
// past zero is a silent no-op, never an error.
type TrackerService struct {
	habits domain.HabitRepository
	stats  domain.StatsRepository
	streak *StreakService
	worker *workers.ReminderWorker
	clock  domain.Clock
}

func NewTrackerService(habits domain.HabitRepository, stats domain.StatsRepository, streak *StreakService, worker *workers.ReminderWorker, clock domain.Clock) *TrackerService {
	return &TrackerService{
		habits: habits,
		stats:  stats,
		streak: streak,
		worker: worker,
		clock:  clock,
	}
}

// TrackerResult is what every completion event hands back: the mutated habit,
// the ledger after evaluation, and the events the caller should dispatch to
// its own side-effect layer (sound, celebration, push).
type TrackerResult struct {
	Habit  *domain.Habit     `json:"habit"`
	Stats  *domain.UserStats `json:"stats"`
	Events []domain.Event    `json:"events"`
}

func (s *TrackerService) loadHabit(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	if !habit.WellFormed() {
		return nil, fmt.Errorf("%w: habit %s", domain.ErrMalformedHabit, habit.ID)
	}
	return habit, nil
}

func (s *TrackerService) loadOrCreateStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	stats, err := s.stats.GetByUserID(ctx, userID)
	if err == nil {
		return stats, nil
	}
	if err != domain.ErrStatsNotFound {
		return nil, err
	}

	stats = domain.NewUserStats(userID, s.clock.Now())
	if err := s.stats.Create(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Increment records one completion for today. The first time the goal is
// reached on a day it bumps the lifetime total and awards XP, guarded by the
// habit's last-XP date so repeat calls never double-award.
func (s *TrackerService) Increment(ctx context.Context, habitID, userID string) (*TrackerResult, error) {
	habit, err := s.loadHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.loadOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := domain.DateKey(s.clock.Now())

	var events []domain.Event
	if habit.Increment(today) {
		stats.AddXP(domain.XPPerGoal)
		events = append(events, domain.Event{Type: domain.EventGoalReached, HabitID: habit.ID})

		// Goal reached: pending fire points for today are stale now.
		if s.worker != nil {
			s.worker.Enqueue(habit.ID)
		}
	}

	return s.finish(ctx, habit, stats, events)
}

// Decrement takes back one completion. It does not re-run streak evaluation:
// a day already recorded as successful stays successful.
func (s *TrackerService) Decrement(ctx context.Context, habitID, userID string) (*TrackerResult, error) {
	habit, err := s.loadHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	habit.Decrement()
	habit.UpdatedAt = s.clock.Now()

	if err := s.habits.Update(ctx, habit); err != nil {
		return nil, err
	}

	stats, err := s.loadOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &TrackerResult{Habit: habit, Stats: stats}, nil
}

// Skip marks today as intentionally skipped, which counts as success for
// streak purposes regardless of the completion count.
func (s *TrackerService) Skip(ctx context.Context, habitID, userID string) (*TrackerResult, error) {
	habit, err := s.loadHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.loadOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	habit.SkipDay(domain.DateKey(s.clock.Now()))

	return s.finish(ctx, habit, stats, nil)
}

// CompleteFocusSession counts a finished timed session and then behaves
// exactly like Increment.
func (s *TrackerService) CompleteFocusSession(ctx context.Context, habitID, userID string) (*TrackerResult, error) {
	habit, err := s.loadHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.loadOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	habit.TimedSessionsCompleted++

	today := domain.DateKey(s.clock.Now())
	events := []domain.Event{{Type: domain.EventSessionCompleted, HabitID: habit.ID}}
	if habit.Increment(today) {
		stats.AddXP(domain.XPPerGoal)
		events = append(events, domain.Event{Type: domain.EventGoalReached, HabitID: habit.ID})
		if s.worker != nil {
			s.worker.Enqueue(habit.ID)
		}
	}

	return s.finish(ctx, habit, stats, events)
}

// finish persists the habit, runs streak and badge evaluation over the full
// collection, persists the ledger and assembles the result.
func (s *TrackerService) finish(ctx context.Context, habit *domain.Habit, stats *domain.UserStats, events []domain.Event) (*TrackerResult, error) {
	habit.UpdatedAt = s.clock.Now()
	if err := s.habits.Update(ctx, habit); err != nil {
		return nil, err
	}

	streakEvents, err := s.streak.Evaluate(ctx, habit.UserID, stats)
	if err != nil {
		return nil, err
	}
	events = append(events, streakEvents...)

	stats.UpdatedAt = s.clock.Now()
	if err := s.stats.Update(ctx, stats); err != nil {
		return nil, err
	}

	return &TrackerResult{Habit: habit, Stats: stats, Events: events}, nil
}

package services

import (
	"context"

	"github.com/stridehq/stride-engine/internal/core/domain"
	"github.com/stridehq/stride-engine/internal/core/workers"
)

// RolloverService detects the first activation of a new calendar day and
// resets per-day state across the whole habit collection. It must run before
// any completion event or streak evaluation touches state for that day, so
// yesterday's counts never leak into today.
type RolloverService struct {
	habits domain.HabitRepository
	stats  domain.StatsRepository
	worker *workers.ReminderWorker
	clock  domain.Clock
}

func NewRolloverService(habits domain.HabitRepository, stats domain.StatsRepository, worker *workers.ReminderWorker, clock domain.Clock) *RolloverService {
	return &RolloverService{
		habits: habits,
		stats:  stats,
		worker: worker,
		clock:  clock,
	}
}

type RolloverResult struct {
	Today      string            `json:"today"`
	RolledOver bool              `json:"rolled_over"`
	Stats      *domain.UserStats `json:"stats"`
}

// Rollover resets every habit's daily counter (archived ones included, so a
// restore mid-day does not resurrect a stale count) and queues a reminder
// refresh for each reminder-enabled habit, since yesterday's schedules are
// stale. No-op when the day was already opened.
func (s *RolloverService) Rollover(ctx context.Context, userID string) (*RolloverResult, error) {
	now := s.clock.Now()
	today := domain.DateKey(now)

	stats, err := s.stats.GetByUserID(ctx, userID)
	if err == domain.ErrStatsNotFound {
		stats = domain.NewUserStats(userID, now)
		if err := s.stats.Create(ctx, stats); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if stats.LastAppOpenDate == today {
		return &RolloverResult{Today: today, RolledOver: false, Stats: stats}, nil
	}

	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, h := range habits {
		h.ResetDay()
		h.UpdatedAt = now
		if err := s.habits.Update(ctx, h); err != nil {
			return nil, err
		}
		if h.ReminderEnabled && s.worker != nil {
			s.worker.Enqueue(h.ID)
		}
	}

	stats.LastAppOpenDate = today
	stats.UpdatedAt = now
	if err := s.stats.Update(ctx, stats); err != nil {
		return nil, err
	}

	return &RolloverResult{Today: today, RolledOver: true, Stats: stats}, nil
}

package services

import (
	"context"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

// StreakService runs the once-per-day global success check and the badge
// pass over a user's full habit collection. It mutates the ledger handed to
// it but never persists; callers own the write so one transaction covers the
// whole operation.
type StreakService struct {
	habits domain.HabitRepository
	clock  domain.Clock
}

func NewStreakService(habits domain.HabitRepository, clock domain.Clock) *StreakService {
	return &StreakService{
		habits: habits,
		clock:  clock,
	}
}

// Evaluate applies the streak rules for today and then the badge catalog.
// Redundant calls within the same day are harmless: the date guard makes the
// streak step a no-op and badge unlocks are idempotent.
func (s *StreakService) Evaluate(ctx context.Context, userID string, stats *domain.UserStats) ([]domain.Event, error) {
	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := domain.DateKey(now)
	weekday := domain.WeekdayOrdinal(now)

	var events []domain.Event

	if domain.EvaluateGlobalStreak(today, weekday, habits, stats) {
		events = append(events, domain.Event{Type: domain.EventStreakAdvanced})
	}

	for _, name := range domain.EvaluateBadges(stats, habits) {
		events = append(events, domain.Event{Type: domain.EventBadgeUnlocked, Badge: name})
	}

	return events, nil
}

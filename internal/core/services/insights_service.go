package services

import (
	"context"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

const (
	DefaultHistoryDays = 35
	DefaultHeatmapDays = 84
	MaxInsightDays     = 366
)

// InsightsService derives the read models behind the trends screens: a
// habit's history calendar, the cross-habit activity heatmap, the daily
// completion series and lifetime totals. Everything is computed from
// completion history on demand.
type InsightsService struct {
	habits domain.HabitRepository
	stats  domain.StatsRepository
	clock  domain.Clock
}

func NewInsightsService(habits domain.HabitRepository, stats domain.StatsRepository, clock domain.Clock) *InsightsService {
	return &InsightsService{
		habits: habits,
		stats:  stats,
		clock:  clock,
	}
}

// StatsOverview is the profile header payload: the raw ledger plus the
// derived level fields and lifetime totals.
type StatsOverview struct {
	Stats     *domain.UserStats       `json:"stats"`
	Level     int                     `json:"level"`
	XPInLevel int                     `json:"xp_in_level"`
	Summary   *domain.InsightsSummary `json:"summary"`
}

func clampDays(days, fallback int) int {
	if days <= 0 {
		return fallback
	}
	if days > MaxInsightDays {
		return MaxInsightDays
	}
	return days
}

// History returns the habit's last N days, most recent first. A day counts
// as completed when the recorded completions reached the goal.
func (s *InsightsService) History(ctx context.Context, habitID, userID string, days int) ([]domain.HistoryDay, error) {
	habit, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	days = clampDays(days, DefaultHistoryDays)
	now := s.clock.Now()

	out := make([]domain.HistoryDay, 0, days)
	for i := 0; i < days; i++ {
		key := domain.DateKey(now.AddDate(0, 0, -i))
		count := habit.CompletionHistory[key]
		out = append(out, domain.HistoryDay{
			Date:      key,
			Count:     count,
			Completed: count >= habit.Goal,
		})
	}
	return out, nil
}

// Heatmap sums completions across all habits per day for the last N days,
// most recent first.
func (s *InsightsService) Heatmap(ctx context.Context, userID string, days int) ([]domain.DayActivity, error) {
	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	days = clampDays(days, DefaultHeatmapDays)
	now := s.clock.Now()

	out := make([]domain.DayActivity, 0, days)
	for i := 0; i < days; i++ {
		key := domain.DateKey(now.AddDate(0, 0, -i))
		total := 0
		for _, h := range habits {
			total += h.CompletionHistory[key]
		}
		out = append(out, domain.DayActivity{Date: key, Total: total})
	}
	return out, nil
}

// Daily is the bar-chart series: oldest day first, covering the last N days.
func (s *InsightsService) Daily(ctx context.Context, userID string, days int) ([]domain.DayActivity, error) {
	series, err := s.Heatmap(ctx, userID, clampDays(days, 7))
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}
	return series, nil
}

func (s *InsightsService) Summary(ctx context.Context, userID string) (*domain.InsightsSummary, error) {
	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &domain.InsightsSummary{}
	for _, h := range habits {
		summary.LifetimeWins += h.TotalCompletions
		summary.TimedSessions += h.TimedSessionsCompleted
		if h.IsArchived {
			summary.ArchivedHabits++
		} else {
			summary.ActiveHabits++
		}
	}
	return summary, nil
}

// Overview assembles the stats screen header. Users without a ledger row yet
// get a zero-valued one rather than an error.
func (s *InsightsService) Overview(ctx context.Context, userID string) (*StatsOverview, error) {
	stats, err := s.stats.GetByUserID(ctx, userID)
	if err == domain.ErrStatsNotFound {
		stats = domain.NewUserStats(userID, s.clock.Now())
	} else if err != nil {
		return nil, err
	}

	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StatsOverview{
		Stats:     stats,
		Level:     stats.Level(),
		XPInLevel: stats.XPInLevel(),
		Summary:   summary,
	}, nil
}

// Badges reports the whole catalog with per-user unlock state. Identifiers
// stored in the ledger but absent from the catalog are preserved in storage
// and simply not reported.
func (s *InsightsService) Badges(ctx context.Context, userID string) ([]domain.BadgeStatus, error) {
	stats, err := s.stats.GetByUserID(ctx, userID)
	if err != nil && err != domain.ErrStatsNotFound {
		return nil, err
	}

	out := make([]domain.BadgeStatus, 0, len(domain.BadgeCatalog))
	for _, b := range domain.BadgeCatalog {
		unlocked := stats != nil && stats.HasBadge(b.Name)
		out = append(out, domain.BadgeStatus{Badge: b, Unlocked: unlocked})
	}
	return out, nil
}

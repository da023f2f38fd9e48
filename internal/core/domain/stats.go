package domain

import "time"

const (
	XPPerGoal      = 10
	XPPerStreakDay = 50
	XPPerLevel     = 100
)

// UserStats is the single gamification ledger for a user: global streak,
// experience points and unlocked badges. Level and in-level progress are
// derived, never stored.
type UserStats struct {
	UserID string `json:"user_id" db:"user_id"`

	GlobalStreak int `json:"global_streak" db:"global_streak"`
	TotalXP      int `json:"total_xp" db:"total_xp"`

	// Guard fields: each prevents re-processing of the same calendar day.
	LastGlobalSuccessDate string `json:"last_global_success_date" db:"last_global_success_date"`
	LastAppOpenDate       string `json:"last_app_open_date" db:"last_app_open_date"`

	UnlockedBadges []string `json:"unlocked_badges"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewUserStats(userID string, now time.Time) *UserStats {
	return &UserStats{
		UserID:    userID,
		UpdatedAt: now,
	}
}

func (s *UserStats) Level() int {
	return s.TotalXP/XPPerLevel + 1
}

func (s *UserStats) XPInLevel() int {
	return s.TotalXP % XPPerLevel
}

func (s *UserStats) AddXP(points int) {
	if points > 0 {
		s.TotalXP += points
	}
}

func (s *UserStats) HasBadge(name string) bool {
	for _, b := range s.UnlockedBadges {
		if b == name {
			return true
		}
	}
	return false
}

// AwardBadge appends the badge if absent. Unknown identifiers already in the
// slice are preserved untouched, so catalog changes never require migration.
func (s *UserStats) AwardBadge(name string) bool {
	if s.HasBadge(name) {
		return false
	}
	s.UnlockedBadges = append(s.UnlockedBadges, name)
	return true
}

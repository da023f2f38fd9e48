package domain

import (
	"testing"
	"time"
)

func TestUserStatsLevels(t *testing.T) {
	t.Parallel()

	stats := NewUserStats("user-1", time.Now())

	if stats.Level() != 1 || stats.XPInLevel() != 0 {
		t.Errorf("Expected fresh ledger at level 1 with 0 xp, got %d/%d", stats.Level(), stats.XPInLevel())
	}

	stats.AddXP(250)
	if stats.Level() != 3 {
		t.Errorf("Expected 250 xp to be level 3, got %d", stats.Level())
	}
	if stats.XPInLevel() != 50 {
		t.Errorf("Expected 50 xp into the level, got %d", stats.XPInLevel())
	}

	stats.AddXP(-100)
	if stats.TotalXP != 250 {
		t.Errorf("Negative awards must be ignored, got %d", stats.TotalXP)
	}
}

func TestUserStatsBadgeLedger(t *testing.T) {
	t.Parallel()

	stats := NewUserStats("user-1", time.Now())

	if !stats.AwardBadge(BadgeFirstWin) {
		t.Error("Expected first award to report a new unlock")
	}
	if stats.AwardBadge(BadgeFirstWin) {
		t.Error("Expected a repeated award to be a no-op")
	}
	if !stats.HasBadge(BadgeFirstWin) {
		t.Error("Expected the badge to be recorded")
	}

	// Identifiers no longer in the catalog ride along untouched.
	stats.UnlockedBadges = append(stats.UnlockedBadges, "Retired Badge")
	if !stats.HasBadge("Retired Badge") {
		t.Error("Expected unknown identifiers to be preserved")
	}
}

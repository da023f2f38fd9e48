package domain

// Insight aggregates are derived read models over completion history. They
// are computed on demand and never stored.

// HistoryDay is one cell of a habit's history calendar.
type HistoryDay struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Completed bool   `json:"completed"`
}

// DayActivity is one cell of the cross-habit activity heatmap.
type DayActivity struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

// InsightsSummary carries the lifetime aggregates shown alongside badges.
type InsightsSummary struct {
	LifetimeWins   int `json:"lifetime_wins"`
	TimedSessions  int `json:"timed_sessions"`
	ActiveHabits   int `json:"active_habits"`
	ArchivedHabits int `json:"archived_habits"`
}

// BadgeStatus pairs a catalog entry with its unlock state for one user.
type BadgeStatus struct {
	Badge
	Unlocked bool `json:"unlocked"`
}

package domain

// EventType identifies something the engine wants the outside world to react
// to (sound, confetti, a push). The engine only emits; dispatching is the
// caller's problem.
type EventType string

const (
	EventGoalReached      EventType = "goal_reached"
	EventStreakAdvanced   EventType = "streak_advanced"
	EventBadgeUnlocked    EventType = "badge_unlocked"
	EventSessionCompleted EventType = "session_completed"
)

type Event struct {
	Type    EventType `json:"type"`
	HabitID string    `json:"habit_id,omitempty"`
	Badge   string    `json:"badge,omitempty"`
}

package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty       = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong     = errors.New("habit name is too long (max 100 chars)")
	ErrHabitInvalidUserID   = errors.New("invalid user id")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrInvalidGoal          = errors.New("goal must be between 1 and 100")
	ErrNoScheduledDays      = errors.New("at least one scheduled day is required")
	ErrInvalidWeekday       = errors.New("invalid weekday (must be 1-7)")
	ErrInvalidColor         = errors.New("unknown color name")
	ErrColorLocked          = errors.New("color is locked at the current level")
	ErrInvalidTimerDuration = errors.New("timer duration must be between 1 and 120 minutes")
	ErrInvalidReminderType  = errors.New("invalid reminder type (must be single or interval)")
	ErrInvalidStartTime     = errors.New("invalid start time (must be HH:MM 24h)")
	ErrInvalidIntervalMins  = errors.New("reminder interval must be between 15 and 240 minutes")
	ErrInvalidIntervalCount = errors.New("reminder count must be between 1 and 12")
	ErrHabitArchived        = errors.New("cannot update an archived habit")
	ErrMalformedHabit       = errors.New("habit state violates invariants")
)

var startTimeRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	MaxNameLen       = 100
	MinGoal          = 1
	MaxGoal          = 100
	MinTimerMins     = 1
	MaxTimerMins     = 120
	MinIntervalMins  = 15
	MaxIntervalMins  = 240
	MinIntervalCount = 1
	MaxIntervalCount = 12

	DefaultGoal      = 5
	DefaultTimerMins = 25
	DefaultCategory  = "Personal"
	DefaultColor     = "Blue"
	DefaultIcon      = "spark"
)

// Categories is the fixed catalog habits are filed under.
var Categories = []string{"Health", "Fitness", "Work", "Personal", "Mindset"}

// colorLevels maps each theme color to the minimum level that unlocks it.
var colorLevels = map[string]int{
	"Blue": 1, "Green": 1, "Orange": 1, "Purple": 1, "Red": 1,
	"Teal": 10, "Indigo": 10,
	"Pink": 20, "Mint": 20,
	"Gold": 50,
}

// ColorMinLevel returns the level required to use the named color, or -1 when
// the color is not in the catalog.
func ColorMinLevel(name string) int {
	lvl, ok := colorLevels[name]
	if !ok {
		return -1
	}
	return lvl
}

type Habit struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	Name      string `json:"name" db:"name"`
	Icon      string `json:"icon" db:"icon"`
	Category  string `json:"category" db:"category"`
	ColorName string `json:"color_name" db:"color_name"`
	SortOrder int    `json:"sort_order" db:"sort_order"`

	Goal          int   `json:"goal" db:"goal"`
	ScheduledDays []int `json:"scheduled_days"`

	CompletionCount   int            `json:"completion_count" db:"completion_count"`
	TotalCompletions  int            `json:"total_completions" db:"total_completions"`
	CompletionHistory map[string]int `json:"completion_history"`
	SkippedDays       []string       `json:"skipped_days"`
	LastXPDate        string         `json:"last_xp_date" db:"last_xp_date"`

	IsArchived bool `json:"is_archived" db:"is_archived"`

	IsTimerHabit           bool `json:"is_timer_habit" db:"is_timer_habit"`
	TimerDurationMinutes   int  `json:"timer_duration_minutes" db:"timer_duration_minutes"`
	TimedSessionsCompleted int  `json:"timed_sessions_completed" db:"timed_sessions_completed"`

	ReminderEnabled bool   `json:"reminder_enabled" db:"reminder_enabled"`
	ReminderType    string `json:"reminder_type" db:"reminder_type"`
	IntervalMinutes int    `json:"interval_minutes" db:"interval_minutes"`
	IntervalCount   int    `json:"interval_count" db:"interval_count"`
	StartTime       string `json:"start_time" db:"start_time"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func normalizeScheduledDays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[int]bool)
	var unique []int
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}

	sort.Ints(unique)
	return unique
}

func validCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

func validateHabit(name, category, color string, goal int, scheduledDays []int, isTimer bool, timerMins int, remEnabled bool, remType string, intervalMins, intervalCount int, startTime string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrHabitNameEmpty
	}
	if len(trimmed) > MaxNameLen {
		return ErrHabitNameTooLong
	}

	if !validCategory(category) {
		return ErrInvalidCategory
	}

	if ColorMinLevel(color) < 0 {
		return ErrInvalidColor
	}

	if goal < MinGoal || goal > MaxGoal {
		return ErrInvalidGoal
	}

	if len(scheduledDays) == 0 {
		return ErrNoScheduledDays
	}
	for _, d := range scheduledDays {
		if d < 1 || d > 7 {
			return ErrInvalidWeekday
		}
	}

	if isTimer && (timerMins < MinTimerMins || timerMins > MaxTimerMins) {
		return ErrInvalidTimerDuration
	}

	if remEnabled {
		switch remType {
		case ReminderSingle, ReminderInterval:
		default:
			return ErrInvalidReminderType
		}
		if !startTimeRegex.MatchString(startTime) {
			return ErrInvalidStartTime
		}
		if remType == ReminderInterval {
			if intervalMins < MinIntervalMins || intervalMins > MaxIntervalMins {
				return ErrInvalidIntervalMins
			}
			if intervalCount < MinIntervalCount || intervalCount > MaxIntervalCount {
				return ErrInvalidIntervalCount
			}
		}
	}

	return nil
}

// NewHabit builds a well-formed habit. All engine operations downstream assume
// the invariants enforced here (goal bounds, non-empty schedule), so this is
// the only place malformed input is rejected.
func NewHabit(userID, name, icon, category, color string, goal int, scheduledDays []int, now time.Time) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	if icon == "" {
		icon = DefaultIcon
	}
	if category == "" {
		category = DefaultCategory
	}
	if color == "" {
		color = DefaultColor
	}
	if goal == 0 {
		goal = DefaultGoal
	}
	if len(scheduledDays) == 0 {
		scheduledDays = []int{1, 2, 3, 4, 5, 6, 7}
	}

	if err := validateHabit(name, category, color, goal, scheduledDays, false, DefaultTimerMins, false, "", 0, 0, ""); err != nil {
		return nil, err
	}

	return &Habit{
		ID:                   uuid.New().String(),
		UserID:               userID,
		Name:                 strings.TrimSpace(name),
		Icon:                 icon,
		Category:             category,
		ColorName:            color,
		Goal:                 goal,
		ScheduledDays:        normalizeScheduledDays(scheduledDays),
		CompletionHistory:    make(map[string]int),
		TimerDurationMinutes: DefaultTimerMins,
		ReminderType:         ReminderSingle,
		IntervalMinutes:      60,
		IntervalCount:        3,
		StartTime:            "09:00",
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

type HabitUpdate struct {
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

func (h *Habit) Update(u HabitUpdate, now time.Time) error {
	if h.IsArchived {
		return ErrHabitArchived
	}

	if u.Icon == "" {
		u.Icon = h.Icon
	}

	if err := validateHabit(u.Name, u.Category, u.ColorName, u.Goal, u.ScheduledDays, u.IsTimerHabit, u.TimerDurationMinutes, u.ReminderEnabled, u.ReminderType, u.IntervalMinutes, u.IntervalCount, u.StartTime); err != nil {
		return err
	}

	h.Name = strings.TrimSpace(u.Name)
	h.Icon = u.Icon
	h.Category = u.Category
	h.ColorName = u.ColorName
	h.Goal = u.Goal
	h.ScheduledDays = normalizeScheduledDays(u.ScheduledDays)
	h.IsTimerHabit = u.IsTimerHabit
	if u.IsTimerHabit {
		h.TimerDurationMinutes = u.TimerDurationMinutes
	}
	h.ReminderEnabled = u.ReminderEnabled
	if u.ReminderEnabled {
		h.ReminderType = u.ReminderType
		h.StartTime = u.StartTime
		if u.ReminderType == ReminderInterval {
			h.IntervalMinutes = u.IntervalMinutes
			h.IntervalCount = u.IntervalCount
		}
	}
	h.UpdatedAt = now

	return nil
}

func (h *Habit) ChangePosition(newOrder int, now time.Time) error {
	if h.IsArchived {
		return ErrHabitArchived
	}

	h.SortOrder = newOrder
	h.UpdatedAt = now
	return nil
}

func (h *Habit) Archive(now time.Time) {
	if h.IsArchived {
		return
	}
	h.IsArchived = true
	h.UpdatedAt = now
}

func (h *Habit) Restore(now time.Time) {
	if !h.IsArchived {
		return
	}
	h.IsArchived = false
	h.UpdatedAt = now
}

// WellFormed reports whether the record still satisfies the construction
// invariants. The tracker refuses to mutate a habit that fails this check
// rather than silently corrupting counters.
func (h *Habit) WellFormed() bool {
	return h.Goal >= MinGoal && len(h.ScheduledDays) > 0 &&
		h.CompletionCount >= 0 && h.CompletionCount <= h.Goal
}

// IsScheduledOn reports whether the habit is due on the given weekday
// ordinal. Archived habits are never due.
func (h *Habit) IsScheduledOn(weekday int) bool {
	if h.IsArchived {
		return false
	}
	for _, d := range h.ScheduledDays {
		if d == weekday {
			return true
		}
	}
	return false
}

func (h *Habit) SkippedOn(dateKey string) bool {
	for _, d := range h.SkippedDays {
		if d == dateKey {
			return true
		}
	}
	return false
}

// SatisfiedOn is the per-habit success predicate for streak evaluation:
// the goal was reached today, or the day was intentionally skipped.
func (h *Habit) SatisfiedOn(dateKey string) bool {
	return h.CompletionCount >= h.Goal || h.SkippedOn(dateKey)
}

// Increment applies one completion for the given day. It clamps at the goal
// and reports whether this call was the one that first reached the goal today
// (the caller awards XP exactly once per day off that signal).
//
// Returns false with no state change when already at goal.
func (h *Habit) Increment(dateKey string) bool {
	if h.CompletionCount >= h.Goal {
		return false
	}

	h.CompletionCount++
	if h.CompletionHistory == nil {
		h.CompletionHistory = make(map[string]int)
	}
	h.CompletionHistory[dateKey]++

	if h.CompletionCount == h.Goal && h.LastXPDate != dateKey {
		h.TotalCompletions++
		h.LastXPDate = dateKey
		return true
	}
	return false
}

// Decrement takes back one completion for the current day, clamping at zero.
// It intentionally does not touch CompletionHistory, TotalCompletions or the
// XP guard: once a day's goal has paid out, taking completions back never
// claws anything back.
func (h *Habit) Decrement() {
	if h.CompletionCount > 0 {
		h.CompletionCount--
	}
}

// SkipDay marks the day as intentionally skipped. Idempotent; reports whether
// the day was newly added.
func (h *Habit) SkipDay(dateKey string) bool {
	if h.SkippedOn(dateKey) {
		return false
	}
	h.SkippedDays = append(h.SkippedDays, dateKey)
	return true
}

// ResetDay clears the per-day counter at rollover. History and lifetime
// totals are left untouched.
func (h *Habit) ResetDay() {
	h.CompletionCount = 0
}

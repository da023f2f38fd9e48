package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	ReminderSingle   = "single"
	ReminderInterval = "interval"

	// MaxReminderSlots bounds the per-habit identifier space habitID-0 ..
	// habitID-20. Cancellation always sweeps the full range so stale fire
	// points from an older, longer schedule cannot survive a regeneration.
	MaxReminderSlots = 21
)

// FirePoint is one recurring time-of-day trigger handed to the external
// notification system. The identifier is stable per habit and slot index so
// regeneration can invalidate exactly what it previously requested.
type FirePoint struct {
	Identifier string `json:"identifier"`
	HabitID    string `json:"habit_id"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

// ReminderScheduler is the boundary to the external notification system.
// The engine only computes schedules; delivery, permissions and persistence
// of pending triggers live behind this port.
type ReminderScheduler interface {
	Schedule(ctx context.Context, points []FirePoint) error
	Cancel(ctx context.Context, identifiers []string) error
}

func FirePointID(habitID string, slot int) string {
	return fmt.Sprintf("%s-%d", habitID, slot)
}

// CancelIdentifiers enumerates every identifier a habit could have claimed.
func CancelIdentifiers(habitID string) []string {
	ids := make([]string, 0, MaxReminderSlots)
	for i := 0; i < MaxReminderSlots; i++ {
		ids = append(ids, FirePointID(habitID, i))
	}
	return ids
}

func parseStartTime(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidStartTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidStartTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrInvalidStartTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidStartTime
	}
	return hour, minute, nil
}

// BuildSchedule enumerates the fire points a habit should have scheduled
// right now. A habit with reminders off, or one already satisfied today,
// yields an empty schedule: no nagging after success.
//
// Interval schedules place the i-th point at startTime + i*intervalMinutes,
// wrapping past midnight into the next day's hour:minute.
func BuildSchedule(h *Habit) []FirePoint {
	if !h.ReminderEnabled || h.CompletionCount >= h.Goal {
		return nil
	}

	hour, minute, err := parseStartTime(h.StartTime)
	if err != nil {
		return nil
	}

	title := fmt.Sprintf("TIME FOR %s", strings.ToUpper(h.Name))
	const body = "Don't break your streak!"

	if h.ReminderType == ReminderSingle {
		return []FirePoint{{
			Identifier: FirePointID(h.ID, 0),
			HabitID:    h.ID,
			Hour:       hour,
			Minute:     minute,
			Title:      title,
			Body:       body,
		}}
	}

	points := make([]FirePoint, 0, h.IntervalCount)
	for i := 0; i < h.IntervalCount; i++ {
		total := (hour*60 + minute + i*h.IntervalMinutes) % (24 * 60)
		points = append(points, FirePoint{
			Identifier: FirePointID(h.ID, i),
			HabitID:    h.ID,
			Hour:       total / 60,
			Minute:     total % 60,
			Title:      title,
			Body:       body,
		})
	}
	return points
}

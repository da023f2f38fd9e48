package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/stridehq/stride-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

const habitColumns = `
	id, user_id, name, icon, category, color_name, sort_order,
	goal, scheduled_days, completion_count, total_completions,
	completion_history, skipped_days, last_xp_date, is_archived,
	is_timer_habit, timer_duration_minutes, timed_sessions_completed,
	reminder_enabled, reminder_type, interval_minutes, interval_count, start_time,
	created_at, updated_at`

func (r *PostgresHabitRepository) scanRow(row scannable) (*domain.Habit, error) {
	var h domain.Habit
	var scheduledDays pq.Int64Array
	var skippedDays pq.StringArray
	var historyJSON []byte

	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Icon, &h.Category, &h.ColorName, &h.SortOrder,
		&h.Goal, &scheduledDays, &h.CompletionCount, &h.TotalCompletions,
		&historyJSON, &skippedDays, &h.LastXPDate, &h.IsArchived,
		&h.IsTimerHabit, &h.TimerDurationMinutes, &h.TimedSessionsCompleted,
		&h.ReminderEnabled, &h.ReminderType, &h.IntervalMinutes, &h.IntervalCount, &h.StartTime,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.ScheduledDays = make([]int, 0, len(scheduledDays))
	for _, d := range scheduledDays {
		h.ScheduledDays = append(h.ScheduledDays, int(d))
	}
	h.SkippedDays = []string(skippedDays)

	h.CompletionHistory = make(map[string]int)
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &h.CompletionHistory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal completion history: %w", err)
		}
	}

	return &h, nil
}

func scheduledDaysArray(days []int) pq.Int64Array {
	arr := make(pq.Int64Array, 0, len(days))
	for _, d := range days {
		arr = append(arr, int64(d))
	}
	return arr
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	historyJSON, err := json.Marshal(h.CompletionHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal completion history: %w", err)
	}

	query := `
        INSERT INTO habits (
            id, user_id, name, icon, category, color_name, sort_order,
            goal, scheduled_days, completion_count, total_completions,
            completion_history, skipped_days, last_xp_date, is_archived,
            is_timer_habit, timer_duration_minutes, timed_sessions_completed,
            reminder_enabled, reminder_type, interval_minutes, interval_count, start_time,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7,
            $8, $9, $10, $11,
            $12, $13, $14, $15,
            $16, $17, $18,
            $19, $20, $21, $22, $23,
            $24, $25
        )`

	_, err = r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Icon, h.Category, h.ColorName, h.SortOrder,
		h.Goal, scheduledDaysArray(h.ScheduledDays), h.CompletionCount, h.TotalCompletions,
		historyJSON, pq.StringArray(h.SkippedDays), h.LastXPDate, h.IsArchived,
		h.IsTimerHabit, h.TimerDurationMinutes, h.TimedSessionsCompleted,
		h.ReminderEnabled, h.ReminderType, h.IntervalMinutes, h.IntervalCount, h.StartTime,
		h.CreatedAt, h.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	h, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1
        ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit

	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	historyJSON, err := json.Marshal(h.CompletionHistory)
	if err != nil {
		return fmt.Errorf("failed to marshal completion history: %w", err)
	}

	query := `
        UPDATE habits SET
            name=$1, icon=$2, category=$3, color_name=$4, sort_order=$5,
            goal=$6, scheduled_days=$7, completion_count=$8, total_completions=$9,
            completion_history=$10, skipped_days=$11, last_xp_date=$12, is_archived=$13,
            is_timer_habit=$14, timer_duration_minutes=$15, timed_sessions_completed=$16,
            reminder_enabled=$17, reminder_type=$18, interval_minutes=$19, interval_count=$20, start_time=$21,
            updated_at=$22
        WHERE id=$23`

	res, err := r.db.ExecContext(ctx, query,
		h.Name, h.Icon, h.Category, h.ColorName, h.SortOrder,
		h.Goal, scheduledDaysArray(h.ScheduledDays), h.CompletionCount, h.TotalCompletions,
		historyJSON, pq.StringArray(h.SkippedDays), h.LastXPDate, h.IsArchived,
		h.IsTimerHabit, h.TimerDurationMinutes, h.TimedSessionsCompleted,
		h.ReminderEnabled, h.ReminderType, h.IntervalMinutes, h.IntervalCount, h.StartTime,
		h.UpdatedAt,
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}

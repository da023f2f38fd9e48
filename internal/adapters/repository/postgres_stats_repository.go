package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

type PostgresStatsRepository struct {
	db *sqlx.DB
}

func NewPostgresStatsRepository(db *sqlx.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserStats, error) {
	query := `
        SELECT user_id, global_streak, total_xp,
               last_global_success_date, last_app_open_date,
               unlocked_badges, updated_at
        FROM user_stats WHERE user_id = $1`

	var s domain.UserStats
	var badges pq.StringArray

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID, &s.GlobalStreak, &s.TotalXP,
		&s.LastGlobalSuccessDate, &s.LastAppOpenDate,
		&badges, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatsNotFound
		}
		return nil, fmt.Errorf("stats scan error: %w", err)
	}

	s.UnlockedBadges = []string(badges)
	return &s, nil
}

func (r *PostgresStatsRepository) Create(ctx context.Context, s *domain.UserStats) error {
	query := `
        INSERT INTO user_stats (
            user_id, global_streak, total_xp,
            last_global_success_date, last_app_open_date,
            unlocked_badges, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		s.UserID, s.GlobalStreak, s.TotalXP,
		s.LastGlobalSuccessDate, s.LastAppOpenDate,
		pq.StringArray(s.UnlockedBadges), s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user stats: %w", err)
	}

	return nil
}

func (r *PostgresStatsRepository) Update(ctx context.Context, s *domain.UserStats) error {
	query := `
        UPDATE user_stats SET
            global_streak=$1, total_xp=$2,
            last_global_success_date=$3, last_app_open_date=$4,
            unlocked_badges=$5, updated_at=$6
        WHERE user_id=$7`

	res, err := r.db.ExecContext(ctx, query,
		s.GlobalStreak, s.TotalXP,
		s.LastGlobalSuccessDate, s.LastAppOpenDate,
		pq.StringArray(s.UnlockedBadges), s.UpdatedAt,
		s.UserID,
	)
	if err != nil {
		return fmt.Errorf("stats update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrStatsNotFound
	}

	return nil
}

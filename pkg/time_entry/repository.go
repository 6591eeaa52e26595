package time_entry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetAll(ctx context.Context) ([]TimeEntry, error)
	GetForUser(ctx context.Context, userId string) ([]TimeEntry, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectEntries = `SELECT
				entry.id::text,
				entry.user_id::text,
				to_char(entry.date, 'YYYY-MM-DD'),
				to_char(entry.start_time, 'HH24:MI'),
				to_char(entry.end_time, 'HH24:MI'),
				entry.created_at,
				entry.updated_at
			  FROM time_tracker entry`

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]TimeEntry, error) {
	query := selectEntries + ` ORDER BY entry.date, entry.start_time, entry.created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to get time entries: %v", err)
		return nil, err
	}
	return scanEntries(rows)
}

func (r *RepositoryImpl) GetForUser(ctx context.Context, userId string) ([]TimeEntry, error) {
	query := selectEntries + ` WHERE entry.user_id = $1::text::uuid ORDER BY entry.date, entry.start_time, entry.created_at`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to get time entries of user %s: %v", userId, err)
		return nil, err
	}
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]TimeEntry, error) {
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		var entry TimeEntry
		if err := rows.Scan(
			&entry.Id,
			&entry.UserId,
			&entry.Date,
			&entry.StartTime,
			&entry.EndTime,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("could not scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

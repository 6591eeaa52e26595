package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertUser stores a user row and returns its generated id.
func InsertUser(t *testing.T, db *pgxpool.Pool, email string, firstName string, isAdmin bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(),
		`INSERT INTO users (id, email, first_name, last_name, date_of_birth, is_admin) VALUES ($1::text::uuid, $2, $3, '', '1990-05-17', $4)`,
		id, email, firstName, isAdmin)
	require.NoError(t, err)
	return id
}

// InsertTimeEntry stores a time_tracker row and returns its generated id.
// date is YYYY-MM-DD, start and end are HH:MM.
func InsertTimeEntry(t *testing.T, db *pgxpool.Pool, userId string, date string, start string, end string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(),
		`INSERT INTO time_tracker (id, user_id, date, start_time, end_time) VALUES ($1::text::uuid, $2::text::uuid, $3::text::date, $4::text::time, $5::text::time)`,
		id, userId, date, start, end)
	require.NoError(t, err)
	return id
}

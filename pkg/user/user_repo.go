package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (u *RepoImpl) GetUser(ctx context.Context, id string) (User, error) {
	query := `SELECT id::text, email, first_name, last_name, date_of_birth, is_admin, created_at, updated_at
			  FROM users WHERE id = $1::text::uuid`
	var user User
	var dateOfBirth sql.NullTime
	err := u.db.QueryRow(ctx, query, id).Scan(
		&user.Id,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&dateOfBirth,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user with id %s not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	if dateOfBirth.Valid {
		user.DateOfBirth = dateOfBirth.Time.Format("2006-01-02")
	}
	return user, nil
}

func (u *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id::text, email, first_name, last_name, date_of_birth, is_admin, created_at, updated_at
			  FROM users ORDER BY created_at`
	rows, err := u.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0, 10)
	for rows.Next() {
		var user User
		var dateOfBirth sql.NullTime
		err := rows.Scan(&user.Id, &user.Email, &user.FirstName, &user.LastName, &dateOfBirth, &user.IsAdmin,
			&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		if dateOfBirth.Valid {
			user.DateOfBirth = dateOfBirth.Time.Format("2006-01-02")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return users, nil
}

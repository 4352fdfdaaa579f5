package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rates-bot/internal/models"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL UNIQUE,
	username TEXT NOT NULL,
	first_name TEXT,
	last_name TEXT,
	created_at TIMESTAMPTZ DEFAULT NOW()
)`

const upsertUser = `
INSERT INTO users (user_id, username, first_name, last_name, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id) DO UPDATE SET
	username = EXCLUDED.username,
	first_name = EXCLUDED.first_name,
	last_name = EXCLUDED.last_name`

type UserRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

// EnsureSchema creates the users table if it does not exist yet.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Save inserts user, or refreshes its names when the user started the bot
// before.
func (r *UserRepository) Save(ctx context.Context, user models.ChatUser) error {
	_, err := r.db.ExecContext(ctx, upsertUser,
		user.UserID, user.UserName, user.FirstName, user.LastName, r.now(),
	)
	if err != nil {
		return fmt.Errorf("save user %d: %w", user.UserID, err)
	}
	return nil
}

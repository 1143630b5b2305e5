package repository

import (
	"context"
	"database/sql"
	"errors"
)

// FlagRepo is a string key-value table used for the session flags.
type FlagRepo struct {
	db *sql.DB
}

func NewFlagRepo(db *sql.DB) *FlagRepo { return &FlagRepo{db: db} }

func (r *FlagRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session_flags WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *FlagRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO session_flags(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP;
	`, key, value)
	return err
}

func (r *FlagRepo) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_flags WHERE key = ?`, key)
	return err
}


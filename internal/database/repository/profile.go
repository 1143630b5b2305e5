package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ProfileRepo stores the single signed-in profile.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Save(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO profile(id, name, email, updated_at) VALUES(1, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name = CASE WHEN excluded.name = '' AND profile.email = excluded.email THEN profile.name ELSE excluded.name END,
	 email = excluded.email,
	 updated_at = excluded.updated_at;
	`, p.Name, p.Email, time.Now().UTC())
	return err
}

// Get returns ErrNotFound until someone has signed in.
func (r *ProfileRepo) Get(ctx context.Context) (Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `SELECT name, email, updated_at FROM profile WHERE id = 1`).Scan(&p.Name, &p.Email, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

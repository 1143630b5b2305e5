package repository

import (
	"context"
	"database/sql"
	"time"
)

// NotificationRepo handles notifications.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

func (r *NotificationRepo) Insert(ctx context.Context, n Notification) error {
	created := n.CreatedAt.UTC()
	if n.CreatedAt.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO notifications(id, kind, title, message, read, created_at)
	VALUES(?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO NOTHING;
	`, n.ID, n.Kind, n.Title, n.Message, n.Read, created)
	return err
}

// List returns notifications newest first.
func (r *NotificationRepo) List(ctx context.Context) ([]Notification, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, title, message, read, created_at FROM notifications ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepo) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&n)
	return n, err
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "notification "+id)
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE read = 0`)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// NoteFilters defines list filters.
type NoteFilters struct {
	Type     NoteType // empty = all types
	Favorite bool
	Limit    int // 0 = unlimited
}

// NoteRepo handles notes and their child rows.
type NoteRepo struct {
	db *sql.DB
}

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{db: db} }

// Insert stores a note with its key points, action items and tags in one transaction.
func (r *NoteRepo) Insert(ctx context.Context, n Note) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := insertNote(ctx, tx, n); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertNote(ctx context.Context, tx *sql.Tx, n Note) error {
	created := n.CreatedAt.UTC()
	if n.CreatedAt.IsZero() {
		created = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO notes(id, title, preview, type, summary, transcript, source, favorite, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, n.ID, n.Title, n.Preview, string(n.Type), n.Summary, n.Transcript, n.Source, n.Favorite, created, created); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	for i, p := range n.KeyPoints {
		if _, err := tx.ExecContext(ctx, `INSERT INTO note_points(note_id, position, text) VALUES(?, ?, ?)`, n.ID, i, p); err != nil {
			return fmt.Errorf("insert key point: %w", err)
		}
	}
	for i, a := range n.ActionItems {
		if _, err := tx.ExecContext(ctx, `INSERT INTO note_action_items(note_id, position, text, done) VALUES(?, ?, ?, ?)`, n.ID, i, a.Text, a.Done); err != nil {
			return fmt.Errorf("insert action item: %w", err)
		}
	}
	for _, t := range n.Tags {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO note_tags(note_id, tag) VALUES(?, ?)`, n.ID, t); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	return nil
}

// Get loads a note with all child rows.
func (r *NoteRepo) Get(ctx context.Context, id string) (Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Note{}, err
	}
	if err := r.loadChildren(ctx, &n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// List returns notes newest first. Child rows other than tags are not loaded.
func (r *NoteRepo) List(ctx context.Context, f NoteFilters) ([]Note, error) {
	var where []string
	var args []interface{}

	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.Favorite {
		where = append(where, "favorite = 1")
	}

	query := "SELECT " + noteColumns + " FROM notes"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		tags, err := r.fetchTags(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tags = tags
	}
	return out, nil
}

// CountByType returns the number of notes of each type.
func (r *NoteRepo) CountByType(ctx context.Context) (map[NoteType]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM notes GROUP BY type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[NoteType]int)
	for rows.Next() {
		var t string
		var c int
		if err := rows.Scan(&t, &c); err != nil {
			return nil, err
		}
		out[NoteType(t)] = c
	}
	return out, rows.Err()
}

// CreatedTimes returns the creation time of every note, newest first.
func (r *NoteRepo) CreatedTimes(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT created_at FROM notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *NoteRepo) SetFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET favorite = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, favorite, id)
	if err != nil {
		return err
	}
	return requireRow(res, "note "+id)
}

func (r *NoteRepo) SetActionItemDone(ctx context.Context, noteID string, position int, done bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE note_action_items SET done = ? WHERE note_id = ? AND position = ?`, done, noteID, position)
	if err != nil {
		return err
	}
	return requireRow(res, fmt.Sprintf("action item %s/%d", noteID, position))
}

// Delete removes a note; its points, action items and tags cascade.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "note "+id)
}

func (r *NoteRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n)
	return n, err
}

func (r *NoteRepo) loadChildren(ctx context.Context, n *Note) error {
	rows, err := r.db.QueryContext(ctx, `SELECT text FROM note_points WHERE note_id = ? ORDER BY position`, n.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return err
		}
		n.KeyPoints = append(n.KeyPoints, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT position, text, done FROM note_action_items WHERE note_id = ? ORDER BY position`, n.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var a ActionItem
		if err := rows.Scan(&a.Position, &a.Text, &a.Done); err != nil {
			rows.Close()
			return err
		}
		n.ActionItems = append(n.ActionItems, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	tags, err := r.fetchTags(ctx, n.ID)
	if err != nil {
		return err
	}
	n.Tags = tags
	return nil
}

func (r *NoteRepo) fetchTags(ctx context.Context, noteID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag FROM note_tags WHERE note_id = ? ORDER BY rowid`, noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const noteColumns = "id, title, preview, type, summary, transcript, source, favorite, created_at, updated_at"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNote(s scanner) (Note, error) {
	var n Note
	var typ string
	if err := s.Scan(&n.ID, &n.Title, &n.Preview, &typ, &n.Summary, &n.Transcript, &n.Source, &n.Favorite, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return Note{}, err
	}
	n.Type = NoteType(typ)
	return n, nil
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

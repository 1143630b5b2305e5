package repository

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("repository: not found")

// NoteType is the capture method a note was created from.
type NoteType string

const (
	NoteText  NoteType = "text"
	NotePDF   NoteType = "pdf"
	NoteAudio NoteType = "audio"
	NoteImage NoteType = "image"
)

// NoteTypes lists the capture methods in menu order.
func NoteTypes() []NoteType { return []NoteType{NoteText, NotePDF, NoteAudio, NoteImage} }

// ParseNoteType returns ok=false for anything that is not a capture method.
func ParseNoteType(s string) (NoteType, bool) {
	for _, t := range NoteTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ActionItem is a checklist entry on a note.
type ActionItem struct {
	Position int
	Text     string
	Done     bool
}

// Note represents a note row plus its child rows.
type Note struct {
	ID          string
	Title       string
	Preview     string
	Type        NoteType
	Summary     string
	Transcript  string
	Source      string
	Favorite    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	KeyPoints   []string
	ActionItems []ActionItem
	Tags        []string
}

// Notification represents an in-app notification row.
type Notification struct {
	ID        string
	Kind      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Profile is the single signed-in account. Passwords are never stored.
type Profile struct {
	Name      string
	Email     string
	UpdatedAt time.Time
}

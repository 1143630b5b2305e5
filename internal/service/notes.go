package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/summarizer"
)

// Filter values accepted by Search besides the note types. FilterAll matches
// every note, FilterFavorites only starred ones.
const (
	FilterAll       = "all"
	FilterFavorites = "favorites"
)

// maxSourceBytes caps how much of a source file is fed to the summarizer.
const maxSourceBytes = 1 << 20

// NoteService generates, lists and edits notes.
type NoteService struct {
	Notes         *repository.NoteRepo
	Notifications *repository.NotificationRepo
	Provider      summarizer.Provider
	Now           func() time.Time
}

type GenerateRequest struct {
	Method     repository.NoteType
	Text       string
	SourcePath string
}

// Query is a search over all notes. Type is FilterAll or a note type.
type Query struct {
	Text string
	Type string
}

// FilterCount is one filter chip with the number of notes it matches.
type FilterCount struct {
	Filter string
	Count  int
}

func (s *NoteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Generate summarizes the captured content, stores the result and posts a
// success notification. It returns the new note's ID.
func (s *NoteService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if s.Provider == nil {
		return "", errors.New("notes: summarizer not configured")
	}
	if _, ok := repository.ParseNoteType(string(req.Method)); !ok {
		return "", fmt.Errorf("notes: unknown method %q", req.Method)
	}
	text := req.Text
	if text == "" && req.SourcePath != "" {
		t, err := readSourceText(req.SourcePath)
		if err != nil {
			return "", err
		}
		text = t
	}

	sum, err := s.Provider.Summarize(ctx, summarizer.Request{
		Method:     string(req.Method),
		Text:       text,
		SourceName: req.SourcePath,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	now := s.now()
	note := repository.Note{
		ID:         uuid.NewString(),
		Title:      sum.Title,
		Preview:    sum.Preview,
		Type:       req.Method,
		Summary:    sum.Summary,
		Transcript: sum.Transcript,
		Source:     req.SourcePath,
		CreatedAt:  now,
		KeyPoints:  sum.KeyPoints,
		Tags:       sum.Tags,
	}
	for i, a := range sum.ActionItems {
		note.ActionItems = append(note.ActionItems, repository.ActionItem{Position: i, Text: a})
	}
	if err := s.Notes.Insert(ctx, note); err != nil {
		return "", err
	}
	if s.Notifications != nil {
		if err := s.Notifications.Insert(ctx, repository.Notification{
			ID:        uuid.NewString(),
			Kind:      "success",
			Title:     "Note Generated Successfully",
			Message:   fmt.Sprintf("Your note %q is ready to review.", note.Title),
			CreatedAt: now,
		}); err != nil {
			return note.ID, fmt.Errorf("notify: %w", err)
		}
	}
	return note.ID, nil
}

// readSourceText returns the file's text when it looks like plain text and
// an empty string for binary formats the summarizer only knows by name.
func readSourceText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("source %s: is a directory", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".vtt", ".srt":
	default:
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxSourceBytes))
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	return string(data), nil
}

func (s *NoteService) Get(ctx context.Context, id string) (repository.Note, error) {
	return s.Notes.Get(ctx, id)
}

// Recent returns the n newest notes.
func (s *NoteService) Recent(ctx context.Context, n int) ([]repository.Note, error) {
	return s.Notes.List(ctx, repository.NoteFilters{Limit: n})
}

// Search matches the query text against titles and previews, case-insensitively.
// Queries of four or more runes also match a title word one edit away.
func (s *NoteService) Search(ctx context.Context, q Query) ([]repository.Note, error) {
	f := repository.NoteFilters{}
	switch {
	case q.Type == FilterFavorites:
		f.Favorite = true
	case q.Type != "" && q.Type != FilterAll:
		t, ok := repository.ParseNoteType(q.Type)
		if !ok {
			return nil, fmt.Errorf("notes: unknown filter %q", q.Type)
		}
		f.Type = t
	}
	notes, err := s.Notes.List(ctx, f)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return notes, nil
	}
	out := notes[:0]
	for _, n := range notes {
		if matches(n, needle) {
			out = append(out, n)
		}
	}
	return out, nil
}

func matches(n repository.Note, needle string) bool {
	if strings.Contains(strings.ToLower(n.Title), needle) || strings.Contains(strings.ToLower(n.Preview), needle) {
		return true
	}
	if len([]rune(needle)) < 4 {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(n.Title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if levenshtein.ComputeDistance(w, needle) <= 1 {
			return true
		}
	}
	return false
}

// FilterCounts returns the chip counts in display order: all, each note type,
// then favorites.
func (s *NoteService) FilterCounts(ctx context.Context) ([]FilterCount, error) {
	total, err := s.Notes.Count(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.Notes.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	favs, err := s.Notes.List(ctx, repository.NoteFilters{Favorite: true})
	if err != nil {
		return nil, err
	}
	out := []FilterCount{{Filter: FilterAll, Count: total}}
	for _, t := range repository.NoteTypes() {
		out = append(out, FilterCount{Filter: string(t), Count: byType[t]})
	}
	return append(out, FilterCount{Filter: FilterFavorites, Count: len(favs)}), nil
}

// Delete removes a note and everything attached to it.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.Notes.Delete(ctx, id)
}

// ToggleFavorite flips the favorite mark and returns the new value.
func (s *NoteService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	n, err := s.Notes.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if err := s.Notes.SetFavorite(ctx, id, !n.Favorite); err != nil {
		return false, err
	}
	return !n.Favorite, nil
}

// ToggleActionItem flips an action item's done state and returns the new value.
func (s *NoteService) ToggleActionItem(ctx context.Context, id string, position int) (bool, error) {
	n, err := s.Notes.Get(ctx, id)
	if err != nil {
		return false, err
	}
	for _, a := range n.ActionItems {
		if a.Position == position {
			if err := s.Notes.SetActionItemDone(ctx, id, position, !a.Done); err != nil {
				return false, err
			}
			return !a.Done, nil
		}
	}
	return false, fmt.Errorf("action item %s/%d: %w", id, position, repository.ErrNotFound)
}

// Stats computes dashboard counters for notes created in loc.
func (s *NoteService) Stats(ctx context.Context, loc *time.Location) (Stats, error) {
	times, err := s.Notes.CreatedTimes(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(times, s.now(), loc), nil
}

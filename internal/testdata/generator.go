package testdata

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Pallinder/go-randomdata"
	"github.com/google/uuid"

	"github.com/jask/notewise/internal/database/repository"
)

// RandomNote builds a note of a random type created within the last 30 days.
func RandomNote(now time.Time) repository.Note {
	types := repository.NoteTypes()
	typ := types[randomdata.Number(0, len(types))]
	para := randomdata.Paragraph()
	preview := para
	if r := []rune(preview); len(r) > 60 {
		preview = strings.TrimSpace(string(r[:60])) + "..."
	}
	n := repository.Note{
		ID:        uuid.NewString(),
		Title:     fmt.Sprintf("%s %s", capitalize(randomdata.Adjective()), capitalize(randomdata.Noun())),
		Preview:   preview,
		Type:      typ,
		Summary:   para,
		Favorite:  randomdata.Number(0, 4) == 0,
		CreatedAt: now.Add(-time.Duration(randomdata.Number(0, 30*24)) * time.Hour),
		Tags:      []string{capitalize(randomdata.Noun())},
	}
	for i := 0; i < randomdata.Number(0, 4); i++ {
		n.KeyPoints = append(n.KeyPoints, randomdata.Paragraph())
	}
	for i := 0; i < randomdata.Number(0, 3); i++ {
		n.ActionItems = append(n.ActionItems, repository.ActionItem{
			Position: i,
			Text:     fmt.Sprintf("Follow up with %s", randomdata.SillyName()),
			Done:     randomdata.Boolean(),
		})
	}
	if typ == repository.NoteAudio {
		n.Transcript = fmt.Sprintf("[00:00] %s: %s", randomdata.FirstName(randomdata.RandomGender), randomdata.Paragraph())
	}
	return n
}

// Seed inserts count random notes and returns their IDs.
func Seed(ctx context.Context, notes *repository.NoteRepo, count int, now time.Time) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := RandomNote(now)
		if err := notes.Insert(ctx, n); err != nil {
			return ids, fmt.Errorf("seed note %d: %w", i, err)
		}
		ids = append(ids, n.ID)
	}
	return ids, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

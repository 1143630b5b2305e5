package summarizer

import (
	"context"
	"errors"
)

var ErrEmptyInput = errors.New("summarizer: nothing to summarize")

// Provider turns captured content into a structured note.
type Provider interface {
	Summarize(ctx context.Context, req Request) (Summary, error)
}

// Request is the captured content. Method is one of text, pdf, audio, image.
type Request struct {
	Method     string `json:"method"`
	Text       string `json:"text"`
	SourceName string `json:"source_name"`
}

type Summary struct {
	Title       string   `json:"title"`
	Preview     string   `json:"preview"`
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Tags        []string `json:"tags"`
	Transcript  string   `json:"transcript"`
}

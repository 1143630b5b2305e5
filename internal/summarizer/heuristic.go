package summarizer

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

const (
	maxKeyPoints   = 5
	maxTags        = 3
	previewRunes   = 60
	titleWords     = 6
	transcriptStep = 15 * time.Second
)

// HeuristicProvider is an offline, deterministic stand-in for a hosted model.
// It keeps the Provider contract (timeout, context cancellation) so a real
// backend can replace it without touching callers.
type HeuristicProvider struct {
	timeout time.Duration
}

func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{timeout: 8 * time.Second}
}

// Summarize builds a note from plain text. Timeout: 8s.
func (h *HeuristicProvider) Summarize(ctx context.Context, req Request) (Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	text := strings.TrimSpace(req.Text)
	source := strings.TrimSpace(req.SourceName)
	sentences := splitSentences(text)
	if len(sentences) == 0 && (source == "" || req.Method == "text" || req.Method == "") {
		return Summary{}, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	out := Summary{
		Title:   titleFor(req.Method, sentences, source),
		Preview: preview(sentences, source),
	}
	if len(sentences) > 0 {
		out.Summary = strings.Join(sentences[:min(2, len(sentences))], " ")
	} else {
		out.Summary = fmt.Sprintf("Captured %s from %s.", methodNoun(req.Method), filepath.Base(source))
	}

	for _, s := range sentences {
		if isActionItem(s) {
			out.ActionItems = append(out.ActionItems, strings.TrimRight(s, ".!"))
			continue
		}
		if len(out.KeyPoints) < maxKeyPoints && len(sentences) > 1 {
			out.KeyPoints = append(out.KeyPoints, strings.TrimRight(s, "."))
		}
	}
	out.Tags = topTags(text, maxTags)
	if req.Method == "audio" {
		out.Transcript = transcript(sentences)
	}
	return out, ctx.Err()
}

func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		if strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		switch r {
		case '\n':
			flush()
		case '.', '!', '?':
			b.WriteRune(r)
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}

func titleFor(method string, sentences []string, source string) string {
	if len(sentences) > 0 {
		words := strings.Fields(strings.TrimRight(sentences[0], ".!?"))
		if len(words) > titleWords {
			words = words[:titleWords]
		}
		return properCap(strings.Join(words, " "))
	}
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return fmt.Sprintf("%s: %s", strings.ToUpper(method[:min(1, len(method))])+method[min(1, len(method)):], base)
}

func preview(sentences []string, source string) string {
	if len(sentences) == 0 {
		return filepath.Base(source)
	}
	r := []rune(sentences[0])
	if len(r) <= previewRunes {
		return string(r)
	}
	return strings.TrimSpace(string(r[:previewRunes])) + "..."
}

var actionVerbs = map[string]struct{}{
	"send": {}, "schedule": {}, "review": {}, "call": {}, "email": {}, "buy": {},
	"finish": {}, "prepare": {}, "follow": {}, "book": {}, "draft": {}, "read": {},
	"write": {}, "submit": {}, "remember": {}, "check": {}, "todo": {}, "todo:": {},
}

func isActionItem(s string) bool {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "need to ") || strings.Contains(lower, "must ") {
		return true
	}
	words := strings.Fields(lower)
	if len(words) == 0 {
		return false
	}
	first := strings.TrimFunc(words[0], func(r rune) bool { return !unicode.IsLetter(r) && r != ':' })
	_, ok := actionVerbs[first]
	return ok
}

var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "will": {}, "were": {},
	"they": {}, "their": {}, "there": {}, "about": {}, "which": {}, "would": {}, "should": {},
	"could": {}, "these": {}, "those": {}, "been": {}, "into": {}, "what": {}, "when": {},
	"your": {}, "need": {}, "must": {}, "also": {}, "then": {}, "than": {}, "some": {},
}

func topTags(text string, n int) []string {
	counts := map[string]int{}
	first := map[string]int{}
	for i, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !unicode.IsLetter(r) }) {
		if len([]rune(w)) < 4 {
			continue
		}
		if _, skip := stopwords[w]; skip {
			continue
		}
		if _, skip := actionVerbs[w]; skip {
			continue
		}
		if _, seen := first[w]; !seen {
			first[w] = i
		}
		counts[w]++
	}
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return first[words[i]] < first[words[j]]
	})
	if len(words) > n {
		words = words[:n]
	}
	for i := range words {
		words[i] = properCap(words[i])
	}
	return words
}

func transcript(sentences []string) string {
	lines := make([]string, 0, len(sentences))
	for i, s := range sentences {
		at := time.Duration(i) * transcriptStep
		lines = append(lines, fmt.Sprintf("[%02d:%02d] %s", int(at.Minutes()), int(at.Seconds())%60, s))
	}
	return strings.Join(lines, "\n")
}

func methodNoun(method string) string {
	switch method {
	case "pdf":
		return "a document"
	case "audio":
		return "a recording"
	case "image":
		return "an image"
	default:
		return "text"
	}
}

func properCap(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

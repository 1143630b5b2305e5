package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/jask/notewise/internal/database/repository"
)

const exportTempPrefix = "notewise-tmp-"

// Exporter writes notes as markdown files with YAML frontmatter.
type Exporter struct {
	Notes *repository.NoteRepo
}

type frontmatter struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Type     string    `yaml:"type"`
	Created  time.Time `yaml:"created"`
	Favorite bool      `yaml:"favorite,omitempty"`
	Source   string    `yaml:"source,omitempty"`
	Tags     []string  `yaml:"tags,omitempty"`
}

// Export writes <slug>.md into dir and returns its path. An existing file
// with the same name is replaced.
func (e *Exporter) Export(ctx context.Context, noteID, dir string) (string, error) {
	n, err := e.Notes.Get(ctx, noteID)
	if err != nil {
		return "", err
	}
	body, err := renderMarkdown(n)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(dir, slug(n.Title, n.ID)+".md")
	if err := writeFileAtomic(path, body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func renderMarkdown(n repository.Note) ([]byte, error) {
	meta, err := yaml.Marshal(frontmatter{
		ID:       n.ID,
		Title:    n.Title,
		Type:     string(n.Type),
		Created:  n.CreatedAt.UTC(),
		Favorite: n.Favorite,
		Source:   n.Source,
		Tags:     n.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", n.Title)
	if n.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", n.Summary)
	}
	if len(n.KeyPoints) > 0 {
		b.WriteString("## Key Points\n\n")
		for _, p := range n.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	if len(n.ActionItems) > 0 {
		b.WriteString("## Action Items\n\n")
		for _, a := range n.ActionItems {
			mark := " "
			if a.Done {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, a.Text)
		}
		b.WriteString("\n")
	}
	if n.Transcript != "" {
		fmt.Fprintf(&b, "## Transcript\n\n%s\n", n.Transcript)
	}
	return b.Bytes(), nil
}

func slug(title, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return fallback
	}
	return s
}

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), exportTempPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}

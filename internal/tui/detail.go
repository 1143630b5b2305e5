package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jask/notewise/internal/database/repository"
)

type detailView struct {
	note          repository.Note
	loaded        bool
	cursor        int
	confirmDelete bool
}

func (a *App) loadNote(id string) tea.Cmd {
	return func() tea.Msg {
		n, err := a.services.Notes.Get(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return noteMsg(n)
	}
}

func (a *App) detailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &a.detail
	if d.confirmDelete {
		d.confirmDelete = false
		if !key.Matches(m, a.keys.Yes) {
			return a, nil
		}
		id := d.note.ID
		return a, func() tea.Msg {
			if err := a.services.Notes.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return noteDeletedMsg{id: id}
		}
	}
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.back()
	case !d.loaded:
		return a, nil
	case key.Matches(m, a.keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if d.cursor < len(d.note.ActionItems)-1 {
			d.cursor++
		}
	case key.Matches(m, a.keys.Toggle):
		if len(d.note.ActionItems) == 0 {
			return a, nil
		}
		id, pos := d.note.ID, d.note.ActionItems[d.cursor].Position
		return a, func() tea.Msg {
			if _, err := a.services.Notes.ToggleActionItem(a.ctx, id, pos); err != nil {
				return errMsg{err}
			}
			return a.loadNote(id)()
		}
	case key.Matches(m, a.keys.Favorite):
		id := d.note.ID
		return a, func() tea.Msg {
			if _, err := a.services.Notes.ToggleFavorite(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return a.loadNote(id)()
		}
	case key.Matches(m, a.keys.Delete):
		d.confirmDelete = true
	case key.Matches(m, a.keys.Export):
		id, dir := d.note.ID, a.cfg.Export.Dir
		return a, func() tea.Msg {
			path, err := a.services.Exporter.Export(a.ctx, id, dir)
			if err != nil {
				return errMsg{err}
			}
			return statusMsg("Exported to " + path)
		}
	}
	return a, nil
}

func (a *App) renderDetail() string {
	t := a.theme
	d := a.detail
	if !d.loaded {
		return t.muted.Render("Loading note...")
	}
	n := d.note
	var b strings.Builder
	star := ""
	if n.Favorite {
		star = t.accent.Render(" ★")
	}
	b.WriteString(t.title.Render(n.Title) + star + "\n")
	b.WriteString(t.muted.Render(fmt.Sprintf("%s · %s", methodLabels[n.Type], humanize.Time(n.CreatedAt))) + "\n\n")

	if n.Summary != "" {
		b.WriteString(t.card.Render(t.accent.Render("AI Summary")+"\n"+n.Summary) + "\n\n")
	}
	if len(n.KeyPoints) > 0 {
		b.WriteString(t.text.Render("Key Points") + "\n")
		for i, p := range n.KeyPoints {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
		}
		b.WriteString("\n")
	}
	if len(n.ActionItems) > 0 {
		b.WriteString(t.text.Render("Action Items") + "\n")
		for i, item := range n.ActionItems {
			box := "[ ]"
			text := item.Text
			if item.Done {
				box = t.success.Render("[x]")
				text = t.muted.Render(text)
			}
			prefix := "  "
			if i == d.cursor {
				prefix = t.selected.Render("› ")
			}
			fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
		}
		b.WriteString("\n")
	}
	if n.Transcript != "" {
		b.WriteString(t.text.Render("Transcript") + "\n" + t.muted.Render(n.Transcript) + "\n\n")
	}
	if len(n.Tags) > 0 {
		tags := make([]string, len(n.Tags))
		for i, tag := range n.Tags {
			tags[i] = t.chip.Render("#" + tag)
		}
		b.WriteString(strings.Join(tags, " "))
	}
	if d.confirmDelete {
		b.WriteString("\n\n" + t.danger.Render("Delete this note? (y/n)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

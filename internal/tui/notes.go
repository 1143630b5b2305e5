package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/service"
)

var filterOrder = []string{service.FilterAll, "text", "pdf", "audio", "image", service.FilterFavorites}

var filterLabels = map[string]string{
	service.FilterAll: "All",
	"text":            "Text",
	"pdf":             "PDF",
	"audio":           "Audio",
	"image":           "Image",

	service.FilterFavorites: "★ Favorites",
}

type notesView struct {
	search    textinput.Model
	searching bool
	filterIdx int
	notes     []repository.Note
	counts    []service.FilterCount
	cursor    int
}

func (v notesView) filter() string { return filterOrder[v.filterIdx] }

func (a *App) ensureSearchInput() {
	if a.list.search.Placeholder == "" {
		a.list.search = textinput.New()
		a.list.search.Placeholder = "Search notes..."
		a.list.search.CharLimit = 80
	}
}

func (a *App) loadNotes() tea.Cmd {
	a.ensureSearchInput()
	q := service.Query{Text: a.list.search.Value(), Type: a.list.filter()}
	return func() tea.Msg {
		notes, err := a.services.Notes.Search(a.ctx, q)
		if err != nil {
			return errMsg{err}
		}
		counts, err := a.services.Notes.FilterCounts(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return notesMsg{query: q.Text, filter: q.Type, notes: notes, counts: counts}
	}
}

func (a *App) notesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &a.list
	if v.searching {
		switch m.Type {
		case tea.KeyEnter, tea.KeyEsc:
			v.searching = false
			v.search.Blur()
			return a, nil
		}
		before := v.search.Value()
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(m)
		if v.search.Value() != before {
			v.cursor = 0
			return a, tea.Batch(cmd, a.loadNotes())
		}
		return a, cmd
	}

	switch {
	case key.Matches(m, a.keys.Search):
		v.searching = true
		v.search.Focus()
		return a, textinput.Blink
	case key.Matches(m, a.keys.NextFilter):
		v.filterIdx = (v.filterIdx + 1) % len(filterOrder)
		v.cursor = 0
		return a, a.loadNotes()
	case key.Matches(m, a.keys.PrevFilter):
		v.filterIdx = (v.filterIdx - 1 + len(filterOrder)) % len(filterOrder)
		v.cursor = 0
		return a, a.loadNotes()
	case key.Matches(m, a.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if v.cursor < len(v.notes)-1 {
			v.cursor++
		}
	case key.Matches(m, a.keys.Enter):
		if len(v.notes) == 0 {
			return a, nil
		}
		st, err := a.shell.ViewNote(v.notes[v.cursor].ID)
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		return a, a.goTo(st)
	case key.Matches(m, a.keys.Back):
		if v.search.Value() != "" {
			v.search.SetValue("")
			return a, a.loadNotes()
		}
	}
	return a, nil
}

func (a *App) renderNotes() string {
	t := a.theme
	v := a.list
	var b strings.Builder
	b.WriteString(t.title.Render("All Notes") + "\n\n")
	b.WriteString(v.search.View() + "\n\n")

	counts := map[string]int{}
	for _, c := range v.counts {
		counts[c.Filter] = c.Count
	}
	chips := make([]string, len(filterOrder))
	for i, f := range filterOrder {
		label := fmt.Sprintf("%s %d", filterLabels[f], counts[f])
		if i == v.filterIdx {
			chips[i] = t.chipOn.Render(label)
		} else {
			chips[i] = t.chip.Render(label)
		}
	}
	b.WriteString(strings.Join(chips, " ") + "\n\n")

	if len(v.notes) == 0 {
		b.WriteString(t.muted.Render("No notes found"))
		return b.String()
	}
	for i, n := range v.notes {
		b.WriteString(a.noteLine(n, i == v.cursor) + "\n")
		b.WriteString("    " + t.muted.Render(n.Preview) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

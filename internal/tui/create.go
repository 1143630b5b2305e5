package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/service"
)

var progressMessages = []string{
	"Analyzing content...",
	"Extracting key points...",
	"Generating AI summary...",
	"Finding relevant topics...",
	"Finalizing your note...",
}

// permission is the tri-state answer to "may NoteWise read this file".
type permission string

const (
	permPending permission = "pending"
	permGranted permission = "granted"
	permDenied  permission = "denied"
)

type createView struct {
	method     repository.NoteType // empty while choosing
	choice     int
	text       textarea.Model
	path       textinput.Model
	perm       permission
	generating bool
	progress   int
	spinner    spinner.Model
	err        string
}

func newCreateView(method string) createView {
	ta := textarea.New()
	ta.Placeholder = "Type or paste your notes here..."
	ta.SetWidth(64)
	ta.SetHeight(8)

	pi := textinput.New()
	pi.Placeholder = "/path/to/file"
	pi.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	c := createView{text: ta, path: pi, spinner: sp, perm: permPending}
	if t, ok := repository.ParseNoteType(strings.TrimSpace(method)); ok {
		c.setMethod(t)
	}
	return c
}

func (c *createView) setMethod(t repository.NoteType) {
	c.method = t
	c.err = ""
	c.perm = permPending
	if t == repository.NoteText {
		c.text.Focus()
	}
}

func (c *createView) editing() bool {
	if c.generating || c.method == "" {
		return false
	}
	return c.method == repository.NoteText || c.perm == permGranted
}

func (c *createView) focusCmd() tea.Cmd {
	switch {
	case c.method == repository.NoteText:
		return textarea.Blink
	case c.perm == permGranted:
		return textinput.Blink
	}
	return nil
}

func (c *createView) updateInput(msg tea.Msg) tea.Cmd {
	if !c.editing() {
		return nil
	}
	var cmd tea.Cmd
	if c.method == repository.NoteText {
		c.text, cmd = c.text.Update(msg)
	} else {
		c.path, cmd = c.path.Update(msg)
	}
	return cmd
}

func (c *createView) bindings(k keyMap) []key.Binding {
	switch {
	case c.generating:
		return []key.Binding{withHelp(k.Back, "cancel")}
	case c.method == "":
		return []key.Binding{k.QuickCreate, k.Up, k.Down, k.Enter, k.Back}
	case c.method == repository.NoteText:
		return []key.Binding{k.Generate, k.Back}
	case c.perm == permPending:
		return []key.Binding{k.Allow, k.Deny, k.Back}
	case c.perm == permDenied:
		return []key.Binding{k.Ask, k.Back}
	}
	return []key.Binding{withHelp(k.Enter, "generate"), k.Back}
}

func (a *App) createKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &a.create
	if key.Matches(m, a.keys.Back) {
		return a, a.back()
	}
	if c.generating {
		return a, nil
	}

	types := repository.NoteTypes()
	if c.method == "" {
		switch {
		case key.Matches(m, a.keys.QuickCreate):
			c.setMethod(types[int(m.String()[0]-'1')])
			return a, c.focusCmd()
		case key.Matches(m, a.keys.Up):
			if c.choice > 0 {
				c.choice--
			}
		case key.Matches(m, a.keys.Down):
			if c.choice < len(types)-1 {
				c.choice++
			}
		case key.Matches(m, a.keys.Enter):
			c.setMethod(types[c.choice])
			return a, c.focusCmd()
		}
		return a, nil
	}

	if c.method == repository.NoteText {
		if key.Matches(m, a.keys.Generate) {
			return a, a.startGenerate()
		}
		var cmd tea.Cmd
		c.text, cmd = c.text.Update(m)
		return a, cmd
	}

	switch c.perm {
	case permPending:
		switch {
		case key.Matches(m, a.keys.Allow):
			c.perm = permGranted
			c.path.Focus()
			return a, textinput.Blink
		case key.Matches(m, a.keys.Deny):
			c.perm = permDenied
		}
	case permDenied:
		if key.Matches(m, a.keys.Ask) {
			c.perm = permPending
		}
	case permGranted:
		if key.Matches(m, a.keys.Enter) || key.Matches(m, a.keys.Generate) {
			return a, a.startGenerate()
		}
		var cmd tea.Cmd
		c.path, cmd = c.path.Update(m)
		return a, cmd
	}
	return a, nil
}

func (a *App) startGenerate() tea.Cmd {
	c := &a.create
	switch {
	case c.method == repository.NoteText && strings.TrimSpace(c.text.Value()) == "":
		c.err = "Write something first"
		return nil
	case c.method != repository.NoteText && c.perm != permGranted:
		return nil
	case c.method != repository.NoteText && strings.TrimSpace(c.path.Value()) == "":
		c.err = "Choose a file first"
		return nil
	}
	c.generating = true
	c.progress = 0
	c.err = ""
	a.createSeq++
	seq := a.createSeq
	return tea.Batch(
		c.spinner.Tick,
		a.progressTick(),
		tea.Tick(a.cfg.Create.GenerateDelay, func(time.Time) tea.Msg { return generateReadyMsg{seq: seq} }),
	)
}

func (a *App) progressTick() tea.Cmd {
	seq := a.createSeq
	return tea.Tick(a.cfg.Create.ProgressInterval, func(time.Time) tea.Msg { return progressTickMsg{seq: seq} })
}

func (a *App) generateCmd(seq int) tea.Cmd {
	req := service.GenerateRequest{Method: a.create.method}
	if req.Method == repository.NoteText {
		req.Text = a.create.text.Value()
	} else {
		req.SourcePath = expandHome(strings.TrimSpace(a.create.path.Value()))
	}
	return func() tea.Msg {
		id, err := a.services.Notes.Generate(a.ctx, req)
		return generatedMsg{seq: seq, id: id, err: err}
	}
}

func (a *App) handleGenerated(m generatedMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.createSeq {
		return a, nil
	}
	a.create.generating = false
	if m.err != nil {
		a.log.Error("generate note", "method", a.create.method, "err", m.err)
		if m.id == "" {
			a.create.err = m.err.Error()
			return a, nil
		}
	}
	st, err := a.shell.NoteCreated(m.id)
	if err != nil {
		a.create.err = err.Error()
		return a, nil
	}
	return a, a.goTo(st)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

func (a *App) renderCreate() string {
	t := a.theme
	c := a.create
	var b strings.Builder
	b.WriteString(t.title.Render("Create Note") + "\n\n")

	switch {
	case c.generating:
		b.WriteString(c.spinner.View() + " " + t.accent.Render(progressMessages[c.progress]))
	case c.method == "":
		b.WriteString(t.text.Render("How would you like to capture?") + "\n\n")
		for i, typ := range repository.NoteTypes() {
			line := fmt.Sprintf("[%d] %s", i+1, methodLabels[typ])
			if i == c.choice {
				line = t.selected.Render("› " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
	case c.method == repository.NoteText:
		b.WriteString(c.text.View())
	default:
		fmt.Fprintf(&b, "Source: %s\n\n", methodLabels[c.method])
		switch c.perm {
		case permPending:
			b.WriteString(t.text.Render("NoteWise needs access to your files. Allow? (y/n)"))
		case permDenied:
			b.WriteString(t.danger.Render("File access denied. Generate is disabled.") + "\n" +
				t.muted.Render("Press p to ask again."))
		case permGranted:
			b.WriteString(c.path.View())
		}
	}
	if c.err != "" {
		b.WriteString("\n\n" + t.danger.Render(c.err))
	}
	return b.String()
}

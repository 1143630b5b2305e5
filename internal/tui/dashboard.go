package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/service"
	"github.com/jask/notewise/internal/shell"
)

var featureTips = []string{
	"Summarize your lectures instantly.",
	"Transcribe voice notes with AI.",
	"Generate quizzes from your notes.",
	"Create flashcards in seconds.",
	"Search your notes with smart AI.",
}

var methodLabels = map[repository.NoteType]string{
	repository.NoteText:  "Text",
	repository.NotePDF:   "PDF",
	repository.NoteAudio: "Audio",
	repository.NoteImage: "Image",
}

type dashboardView struct {
	recent  []repository.Note
	stats   service.Stats
	unread  int
	profile repository.Profile
	tip     int
	cursor  int
}

func (a *App) tipTick() tea.Cmd {
	a.tipSeq++
	seq := a.tipSeq
	return tea.Tick(a.cfg.Dashboard.TipInterval, func(time.Time) tea.Msg { return tipTickMsg{seq: seq} })
}

func (a *App) dashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.QuickCreate):
		types := repository.NoteTypes()
		idx := int(m.String()[0] - '1')
		return a, a.goTo(a.shell.CreateNote(string(types[idx])))
	case key.Matches(m, a.keys.Notifications):
		return a, a.goTo(a.shell.OpenNotifications())
	case key.Matches(m, a.keys.AllNotes):
		return a, a.goTo(a.shell.ChangeTab(shell.TabNotes))
	case key.Matches(m, a.keys.Theme):
		return a, a.toggleTheme()
	case key.Matches(m, a.keys.Up):
		if a.dash.cursor > 0 {
			a.dash.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.dash.cursor < len(a.dash.recent)-1 {
			a.dash.cursor++
		}
	case key.Matches(m, a.keys.Enter):
		if len(a.dash.recent) == 0 {
			return a, nil
		}
		st, err := a.shell.ViewNote(a.dash.recent[a.dash.cursor].ID)
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		return a, a.goTo(st)
	}
	return a, nil
}

func (a *App) renderDashboard() string {
	t := a.theme
	var b strings.Builder
	greeting := service.Greeting(a.now().In(a.cfg.Location()).Hour())
	if a.dash.profile.Name != "" {
		greeting += ", " + a.dash.profile.Name
	}
	bell := "🔔"
	if a.dash.unread > 0 {
		bell += t.danger.Render(fmt.Sprintf(" %d", a.dash.unread))
	}
	b.WriteString(t.title.Render(greeting) + "   " + bell + "\n")
	b.WriteString(t.accent.Render("✦ "+featureTips[a.dash.tip]) + "\n\n")

	b.WriteString(t.card.Render(fmt.Sprintf("%d today   %d day streak   %d total",
		a.dash.stats.Today, a.dash.stats.Streak, a.dash.stats.Total)) + "\n\n")

	b.WriteString(t.text.Render("Quick create") + "\n")
	for i, typ := range repository.NoteTypes() {
		fmt.Fprintf(&b, "  %s %s", t.accent.Render(fmt.Sprintf("[%d]", i+1)), methodLabels[typ])
	}
	b.WriteString("\n\n" + t.text.Render("Recent notes") + "\n")
	if len(a.dash.recent) == 0 {
		b.WriteString(t.muted.Render("  No notes yet. Press + to create one.") + "\n")
	}
	for i, n := range a.dash.recent {
		b.WriteString(a.noteLine(n, i == a.dash.cursor) + "\n")
	}
	b.WriteString("\n" + t.muted.Render("Pro Tip: Use voice recording for meetings to get automatic transcriptions and action items!"))
	return b.String()
}

func (a *App) noteLine(n repository.Note, selected bool) string {
	prefix := "  "
	title := a.theme.text.Render(n.Title)
	if selected {
		prefix = a.theme.selected.Render("› ")
		title = a.theme.selected.Render(n.Title)
	}
	star := ""
	if n.Favorite {
		star = " ★"
	}
	return fmt.Sprintf("%s%s%s  %s  %s", prefix, title, star,
		a.theme.muted.Render(methodLabels[n.Type]), a.theme.muted.Render(humanize.Time(n.CreatedAt)))
}

func (a *App) profileKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Theme):
		return a, a.toggleTheme()
	case key.Matches(m, a.keys.Settings):
		return a, a.goTo(a.shell.OpenSettings())
	case key.Matches(m, a.keys.Logout):
		return a, a.logout()
	}
	return a, nil
}

func (a *App) renderProfile() string {
	t := a.theme
	p := a.dash.profile
	name := p.Name
	if name == "" {
		name = "NoteWise user"
	}
	email := p.Email
	if email == "" {
		email = "not signed in"
	}
	var b strings.Builder
	b.WriteString(t.title.Render("Profile") + "\n\n")
	b.WriteString(t.card.Render(t.text.Render(name)+"\n"+t.muted.Render(email)) + "\n\n")
	fmt.Fprintf(&b, "Notes: %d   Streak: %d days   Today: %d\n", a.dash.stats.Total, a.dash.stats.Streak, a.dash.stats.Today)
	fmt.Fprintf(&b, "Theme: %s\n\n", t.name)
	b.WriteString(t.accent.Render("[s] Settings") + "   " + t.danger.Render("[L] Log out"))
	return b.String()
}

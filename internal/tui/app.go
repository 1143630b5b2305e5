package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/notewise/internal/config"
	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/service"
	"github.com/jask/notewise/internal/session"
	"github.com/jask/notewise/internal/shell"
)

// App is the root model. The session navigator decides which top-level
// screen is showing; inside the signed-in area the shell state does.
type App struct {
	ctx      context.Context
	cfg      config.Config
	cfgPath  string
	nav      *session.Navigator
	services Services
	log      *slog.Logger
	now      func() time.Time

	keys   keyMap
	help   help.Model
	theme  theme
	shell  shell.State
	status string

	splashSeq int
	tipSeq    int
	createSeq int

	slide        int
	termsChecked bool
	form         authForm

	dash     dashboardView
	create   createView
	detail   detailView
	list     notesView
	inbox    inboxView
	settings settingsView
}

type Services struct {
	Notes         *service.NoteService
	Notifications *service.NotificationService
	Accounts      *service.AccountService
	Maintenance   *service.MaintenanceService
	Exporter      *service.Exporter
}

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock replaces time.Now for greetings and stats.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New builds the root model. cfgPath is where settings changes are saved.
func New(ctx context.Context, cfg config.Config, cfgPath string, nav *session.Navigator, services Services, opts ...Option) *App {
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		cfgPath:  cfgPath,
		nav:      nav,
		services: services,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		keys:     newKeyMap(),
		help:     help.New(),
		theme:    newTheme(cfg.UI.Theme),
		shell:    shell.New(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Init starts a cold launch on the splash screen.
func (a *App) Init() tea.Cmd {
	auto, err := a.nav.Start(a.ctx)
	if err != nil {
		a.status = "error: " + err.Error()
	}
	a.splashSeq++
	seq := a.splashSeq
	cmds := []tea.Cmd{tea.Tick(a.cfg.Splash.Duration, func(time.Time) tea.Msg { return splashDoneMsg{seq: seq} })}
	if auto {
		cmds = append(cmds, tea.Tick(a.cfg.Splash.AutoAdvance, func(time.Time) tea.Msg { return autoAdvanceMsg{seq: seq} }))
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		if m.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		return a.handleKey(m)
	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	case ConfigMsg:
		a.cfg = config.Config(m)
		a.theme = newTheme(a.cfg.UI.Theme)
		return a, nil

	case splashDoneMsg:
		if m.seq != a.splashSeq {
			return a, nil
		}
		return a, a.sessionEvent(a.nav.SplashComplete)
	case autoAdvanceMsg:
		if m.seq != a.splashSeq {
			return a, nil
		}
		return a, a.sessionEvent(a.nav.AutoAdvance)
	case accountMsg:
		return a.handleAccount(m)

	case tipTickMsg:
		if m.seq != a.tipSeq || a.nav.Current() != session.ScreenApp || a.shell.Screen.Kind != shell.KindDashboard {
			return a, nil
		}
		a.dash.tip = (a.dash.tip + 1) % len(featureTips)
		return a, a.tipTick()
	case progressTickMsg:
		if m.seq != a.createSeq || !a.create.generating {
			return a, nil
		}
		a.create.progress = (a.create.progress + 1) % len(progressMessages)
		return a, a.progressTick()
	case spinner.TickMsg:
		if !a.create.generating {
			return a, nil
		}
		var cmd tea.Cmd
		a.create.spinner, cmd = a.create.spinner.Update(m)
		return a, cmd
	case generateReadyMsg:
		if m.seq != a.createSeq || !a.create.generating {
			return a, nil
		}
		return a, a.generateCmd(m.seq)
	case generatedMsg:
		return a.handleGenerated(m)

	case dashboardMsg:
		a.dash.recent = m.recent
		a.dash.stats = m.stats
		a.dash.unread = m.unread
		a.dash.profile = m.profile
		if a.dash.cursor >= len(a.dash.recent) {
			a.dash.cursor = 0
		}
		return a, nil
	case notesMsg:
		if m.query != a.list.search.Value() || m.filter != a.list.filter() {
			return a, nil
		}
		a.list.notes = m.notes
		a.list.counts = m.counts
		if a.list.cursor >= len(a.list.notes) {
			a.list.cursor = 0
		}
		return a, nil
	case noteMsg:
		if repository.Note(m).ID != a.shell.Screen.NoteID {
			return a, nil
		}
		a.detail.note = repository.Note(m)
		a.detail.loaded = true
		return a, nil
	case notificationsMsg:
		a.inbox.items = []repository.Notification(m)
		if a.inbox.cursor >= len(a.inbox.items) {
			a.inbox.cursor = 0
		}
		return a, nil
	case noteDeletedMsg:
		if a.nav.Current() != session.ScreenApp || a.shell.Screen.NoteID != m.id {
			return a, nil
		}
		a.status = "Note deleted"
		return a, a.back()
	case resetDoneMsg:
		if a.nav.Current() != session.ScreenApp {
			return a, nil
		}
		a.status = "All data cleared"
		return a, a.goTo(shell.New())
	}
	return a, a.updateInputs(msg)
}

// updateInputs forwards non-key messages (cursor blinks) to whichever input
// is live on the current screen.
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.nav.Current() {
	case session.ScreenLogin, session.ScreenSignup:
		if len(a.form.inputs) > 0 {
			a.form.inputs[a.form.focus], cmd = a.form.inputs[a.form.focus].Update(msg)
		}
	case session.ScreenApp:
		switch a.shell.Screen.Kind {
		case shell.KindCreate:
			cmd = a.create.updateInput(msg)
		case shell.KindAllNotes:
			a.list.search, cmd = a.list.search.Update(msg)
		}
	}
	return cmd
}

// typing reports whether printable keys belong to a text field.
func (a *App) typing() bool {
	switch a.nav.Current() {
	case session.ScreenLogin, session.ScreenSignup:
		return true
	case session.ScreenApp:
		switch a.shell.Screen.Kind {
		case shell.KindCreate:
			return a.create.editing()
		case shell.KindAllNotes:
			return a.list.searching
		}
	}
	return false
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "q" && !a.typing() {
		return a, tea.Quit
	}
	switch a.nav.Current() {
	case session.ScreenSplash:
		if key.Matches(m, a.keys.Enter) {
			return a, a.sessionEvent(a.nav.SplashComplete)
		}
	case session.ScreenOnboarding:
		return a.onboardingKey(m)
	case session.ScreenAcceptTerms:
		return a.termsKey(m)
	case session.ScreenLogin, session.ScreenSignup:
		return a.authKey(m)
	case session.ScreenApp:
		return a.shellKey(m)
	}
	return a, nil
}

// sessionEvent runs one navigator operation and reacts to the screen it lands on.
// A failed flag write leaves the navigator, and therefore the UI, where it was.
func (a *App) sessionEvent(fn func(context.Context) error) tea.Cmd {
	prev := a.nav.Current()
	if err := fn(a.ctx); err != nil {
		a.log.Error("session event failed", "screen", prev, "err", err)
		a.status = "error: " + err.Error()
		return nil
	}
	return a.enterSession(prev)
}

func (a *App) enterSession(prev session.Screen) tea.Cmd {
	cur := a.nav.Current()
	if cur == prev {
		return nil
	}
	a.status = ""
	if prev == session.ScreenSplash {
		a.splashSeq++
	}
	if prev == session.ScreenApp {
		a.tipSeq++
		a.createSeq++
		a.shell = a.shell.Reset()
	}
	switch cur {
	case session.ScreenOnboarding:
		a.slide = 0
	case session.ScreenAcceptTerms:
		a.termsChecked = false
	case session.ScreenLogin, session.ScreenSignup:
		a.form = newAuthForm(cur == session.ScreenSignup)
		return a.form.focusCmd()
	case session.ScreenApp:
		return a.goTo(shell.New())
	}
	return nil
}

func (a *App) shellKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.shell.ShowsTabBar() && !a.typing() {
		switch {
		case key.Matches(m, a.keys.Home):
			return a, a.goTo(a.shell.ChangeTab(shell.TabHome))
		case key.Matches(m, a.keys.Notes):
			return a, a.goTo(a.shell.ChangeTab(shell.TabNotes))
		case key.Matches(m, a.keys.Profile):
			return a, a.goTo(a.shell.ChangeTab(shell.TabProfile))
		case key.Matches(m, a.keys.Create):
			return a, a.goTo(a.shell.CreateNote(""))
		}
	}
	switch a.shell.Screen.Kind {
	case shell.KindDashboard:
		return a.dashboardKey(m)
	case shell.KindCreate:
		return a.createKey(m)
	case shell.KindNoteDetail:
		return a.detailKey(m)
	case shell.KindAllNotes:
		return a.notesKey(m)
	case shell.KindProfile:
		return a.profileKey(m)
	case shell.KindSettings:
		return a.settingsKey(m)
	case shell.KindNotifications:
		return a.inboxKey(m)
	}
	return a, nil
}

// goTo installs a new shell state and starts whatever the destination needs.
// Timers owned by the screen being left are invalidated.
func (a *App) goTo(st shell.State) tea.Cmd {
	prev := a.shell.Screen
	a.shell = st
	if prev.Kind == shell.KindDashboard {
		a.tipSeq++
	}
	if prev.Kind == shell.KindCreate {
		a.createSeq++
	}
	switch st.Screen.Kind {
	case shell.KindDashboard:
		return tea.Batch(a.loadDashboard(), a.tipTick())
	case shell.KindCreate:
		a.create = newCreateView(st.Screen.Method)
		return a.create.focusCmd()
	case shell.KindNoteDetail:
		a.detail = detailView{}
		return a.loadNote(st.Screen.NoteID)
	case shell.KindAllNotes:
		return a.loadNotes()
	case shell.KindProfile:
		return a.loadDashboard()
	case shell.KindSettings:
		a.settings = settingsView{}
		return nil
	case shell.KindNotifications:
		return a.loadNotifications()
	}
	return nil
}

func (a *App) back() tea.Cmd {
	return a.goTo(a.shell.Back())
}

func (a *App) logout() tea.Cmd {
	return a.sessionEvent(a.nav.Logout)
}

func (a *App) saveConfigCmd() tea.Cmd {
	cfg := a.cfg
	path := a.cfgPath
	return func() tea.Msg {
		if err := config.Save(path, cfg); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (a *App) toggleTheme() tea.Cmd {
	a.cfg.UI.Theme = a.theme.toggled()
	a.theme = newTheme(a.cfg.UI.Theme)
	return a.saveConfigCmd()
}

func (a *App) loadDashboard() tea.Cmd {
	loc := a.cfg.Location()
	return func() tea.Msg {
		recent, err := a.services.Notes.Recent(a.ctx, 3)
		if err != nil {
			return errMsg{err}
		}
		stats, err := a.services.Notes.Stats(a.ctx, loc)
		if err != nil {
			return errMsg{err}
		}
		unread, err := a.services.Notifications.UnreadCount(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		profile, err := a.services.Accounts.Profile(a.ctx)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return errMsg{err}
		}
		return dashboardMsg{recent: recent, stats: stats, unread: unread, profile: profile}
	}
}

func (a *App) View() string {
	var body string
	switch a.nav.Current() {
	case session.ScreenSplash:
		body = a.renderSplash()
	case session.ScreenOnboarding:
		body = a.renderOnboarding()
	case session.ScreenAcceptTerms:
		body = a.renderTerms()
	case session.ScreenLogin, session.ScreenSignup:
		body = a.renderAuth()
	case session.ScreenApp:
		body = a.renderShell()
	}
	parts := []string{body}
	if a.status != "" {
		parts = append(parts, a.theme.muted.Render(a.status))
	}
	parts = append(parts, a.help.ShortHelpView(a.bindings()))
	return strings.Join(parts, "\n\n")
}

func (a *App) renderShell() string {
	var body string
	switch a.shell.Screen.Kind {
	case shell.KindDashboard:
		body = a.renderDashboard()
	case shell.KindCreate:
		body = a.renderCreate()
	case shell.KindNoteDetail:
		body = a.renderDetail()
	case shell.KindAllNotes:
		body = a.renderNotes()
	case shell.KindProfile:
		body = a.renderProfile()
	case shell.KindSettings:
		body = a.renderSettings()
	case shell.KindNotifications:
		body = a.renderInbox()
	}
	if a.shell.ShowsTabBar() {
		body += "\n\n" + a.renderTabBar()
	}
	return body
}

func (a *App) renderTabBar() string {
	labels := map[shell.Tab]string{shell.TabHome: "Home", shell.TabNotes: "Notes", shell.TabProfile: "Profile"}
	var tabs []string
	for _, t := range shell.Tabs() {
		style := a.theme.tab
		if t == a.shell.Tab {
			style = a.theme.tabActive
		}
		tabs = append(tabs, style.Render(labels[t]))
	}
	return strings.Join(tabs, "") + "   " + a.theme.accent.Render("[+] New")
}

func (a *App) bindings() []key.Binding {
	k := a.keys
	switch a.nav.Current() {
	case session.ScreenSplash:
		return []key.Binding{withHelp(k.Enter, "skip"), k.Quit}
	case session.ScreenOnboarding:
		return []key.Binding{k.Left, k.Right, k.Skip, k.Quit}
	case session.ScreenAcceptTerms:
		return []key.Binding{k.Toggle, withHelp(k.Enter, "continue"), k.Quit}
	case session.ScreenLogin:
		return []key.Binding{k.NextFld, withHelp(k.Enter, "log in"), k.ToSignup}
	case session.ScreenSignup:
		return []key.Binding{k.NextFld, withHelp(k.Enter, "sign up"), k.ToLogin}
	}
	var out []key.Binding
	switch a.shell.Screen.Kind {
	case shell.KindDashboard:
		out = []key.Binding{k.QuickCreate, k.Notifications, k.AllNotes, k.Theme}
	case shell.KindCreate:
		out = a.create.bindings(k)
	case shell.KindNoteDetail:
		out = []key.Binding{k.Toggle, k.Favorite, k.Export, k.Delete, k.Back}
	case shell.KindAllNotes:
		out = []key.Binding{k.Search, k.NextFilter, k.Enter}
	case shell.KindProfile:
		out = []key.Binding{k.Theme, k.Settings, k.Logout}
	case shell.KindSettings:
		out = []key.Binding{k.Toggle, k.Back}
	case shell.KindNotifications:
		out = []key.Binding{withHelp(k.Enter, "mark read"), k.MarkAll, k.Back}
	}
	if a.shell.ShowsTabBar() {
		out = append(out, k.Home, k.Notes, k.Profile, k.Create)
	}
	return out
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

package tui

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/notewise/internal/config"
	"github.com/jask/notewise/internal/database"
	"github.com/jask/notewise/internal/database/repository"
	"github.com/jask/notewise/internal/service"
	"github.com/jask/notewise/internal/session"
	"github.com/jask/notewise/internal/shell"
	"github.com/jask/notewise/internal/summarizer"
)

var (
	enterKey    = tea.KeyMsg{Type: tea.KeyEnter}
	escKey      = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey      = tea.KeyMsg{Type: tea.KeyTab}
	downKey     = tea.KeyMsg{Type: tea.KeyDown}
	ctrlS       = tea.KeyMsg{Type: tea.KeyCtrlS}
	spaceKey    = runes(" ")
	allFlagsSet = map[string]string{
		session.KeySeenOnboarding: "true",
		session.KeyAcceptedTerms:  "true",
		session.KeyLoggedIn:       "true",
	}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

type harness struct {
	t       *testing.T
	ctx     context.Context
	db      *sql.DB
	store   *session.MemoryStore
	nav     *session.Navigator
	app     *App
	cfgPath string
	changes []session.Screen
}

func newHarness(t *testing.T, flags map[string]string) *harness {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	t.Cleanup(cancel)

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db, time.Now()))

	notes := repository.NewNoteRepo(db)
	notifications := repository.NewNotificationRepo(db)
	services := Services{
		Notes: &service.NoteService{
			Notes:         notes,
			Notifications: notifications,
			Provider:      summarizer.NewHeuristicProvider(),
		},
		Notifications: &service.NotificationService{Repo: notifications},
		Accounts:      &service.AccountService{Profiles: repository.NewProfileRepo(db)},
		Maintenance:   &service.MaintenanceService{DB: db},
		Exporter:      &service.Exporter{Notes: notes},
	}

	cfg := config.Config{
		UI:        config.UIConfig{Theme: themeDark, Timezone: "Local", PushNotifications: true, AutoSummarize: true},
		Splash:    config.SplashConfig{Duration: time.Millisecond, AutoAdvance: time.Millisecond},
		Create:    config.CreateConfig{GenerateDelay: time.Millisecond, ProgressInterval: time.Hour},
		Dashboard: config.DashboardConfig{TipInterval: time.Hour},
		Export:    config.ExportConfig{Dir: filepath.Join(dir, "export")},
	}

	h := &harness{t: t, ctx: ctx, db: db, store: session.NewMemoryStore(flags), cfgPath: filepath.Join(dir, "config.toml")}
	h.nav = session.New(h.store)
	h.nav.OnChange(func(_, to session.Screen) { h.changes = append(h.changes, to) })
	h.app = New(ctx, cfg, h.cfgPath, h.nav, services)
	return h
}

// start runs Init and lets the splash timers fire.
func (h *harness) start() {
	h.t.Helper()
	h.drain(h.app.Init())
}

func (h *harness) press(keys ...tea.KeyMsg) {
	h.t.Helper()
	for _, k := range keys {
		_, cmd := h.app.Update(k)
		h.drain(cmd)
	}
}

// drain executes commands and feeds the app's own messages back into Update.
// Timers longer than the per-command budget and component ticks are dropped.
func (h *harness) drain(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 200; steps++ {
		c := queue[0]
		queue = queue[1:]
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		if batch, isBatch := msg.(tea.BatchMsg); isBatch {
			queue = append(queue, batch...)
			continue
		}
		if !isAppMsg(msg) {
			continue
		}
		_, next := h.app.Update(msg)
		queue = append(queue, next)
	}
}

func runCmd(c tea.Cmd) (tea.Msg, bool) {
	if c == nil {
		return nil, false
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case m := <-ch:
		return m, m != nil
	case <-time.After(150 * time.Millisecond):
		return nil, false
	}
}

func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case errMsg, statusMsg, splashDoneMsg, autoAdvanceMsg, generateReadyMsg, generatedMsg,
		accountMsg, dashboardMsg, notesMsg, noteMsg, notificationsMsg, resetDoneMsg, noteDeletedMsg:
		return true
	}
	return false
}

func (h *harness) screen() session.Screen { return h.nav.Current() }

func (h *harness) kind() shell.Kind { return h.app.shell.Screen.Kind }

func (h *harness) noteCount() int {
	var n int
	require.NoError(h.t, h.db.QueryRowContext(h.ctx, `SELECT COUNT(*) FROM notes`).Scan(&n))
	return n
}

func TestColdStartToDashboard(t *testing.T) {
	t.Parallel()
	h := newHarness(t, nil)
	h.start()
	require.Equal(t, session.ScreenOnboarding, h.screen())

	h.press(enterKey, enterKey, enterKey)
	require.Equal(t, 3, h.app.slide)
	require.Contains(t, h.app.View(), "Image Recognition")
	h.press(enterKey)
	require.Equal(t, session.ScreenAcceptTerms, h.screen())

	h.press(enterKey)
	require.Equal(t, session.ScreenAcceptTerms, h.screen())
	require.Contains(t, h.app.View(), "Please accept the terms")

	h.press(spaceKey, enterKey)
	require.Equal(t, session.ScreenLogin, h.screen())

	h.press(runes("ada@example.com"), tabKey, runes("secret"), enterKey)
	require.Equal(t, session.ScreenApp, h.screen())
	require.Equal(t, shell.KindDashboard, h.kind())
	require.Equal(t, shell.TabHome, h.app.shell.Tab)
	require.True(t, h.app.shell.ShowsTabBar())
	require.Equal(t, allFlagsSet, h.store.Snapshot())

	view := h.app.View()
	require.Contains(t, view, "Team Meeting Notes")
	require.Contains(t, view, "[+] New")
	require.Equal(t, []session.Screen{
		session.ScreenOnboarding, session.ScreenAcceptTerms, session.ScreenLogin, session.ScreenApp,
	}, h.changes)
}

func TestReturningUserEntersAppOnce(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()
	require.Equal(t, session.ScreenApp, h.screen())

	entries := 0
	for _, s := range h.changes {
		if s == session.ScreenApp {
			entries++
		}
	}
	require.Equal(t, 1, entries)
}

func TestSplashSkipDropsTimers(t *testing.T) {
	t.Parallel()
	h := newHarness(t, map[string]string{session.KeySeenOnboarding: "true"})
	_ = h.app.Init()
	seq := h.app.splashSeq
	h.press(enterKey)
	require.Equal(t, session.ScreenAcceptTerms, h.screen())

	h.store.Ops()
	_, cmd := h.app.Update(splashDoneMsg{seq: seq})
	require.Nil(t, cmd)
	_, cmd = h.app.Update(autoAdvanceMsg{seq: seq})
	require.Nil(t, cmd)
	require.Equal(t, session.ScreenAcceptTerms, h.screen())
	require.Empty(t, h.store.Ops())
}

func TestTabBarFollowsScreen(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	h.press(runes("+"))
	require.Equal(t, shell.KindCreate, h.kind())
	require.False(t, h.app.shell.ShowsTabBar())
	require.NotContains(t, h.app.View(), "[+] New")

	h.press(escKey)
	require.Equal(t, shell.KindDashboard, h.kind())

	h.press(runes("n"))
	require.Equal(t, shell.KindNotifications, h.kind())
	h.press(runes("N"))
	require.Equal(t, shell.KindNotifications, h.kind(), "tab keys are inert without a tab bar")
	h.press(escKey)
	require.Equal(t, shell.KindDashboard, h.kind())

	h.press(runes("N"))
	require.Equal(t, shell.State{Screen: shell.Anchor(shell.TabNotes), Tab: shell.TabNotes}, h.app.shell)
	h.press(runes("P"))
	require.Equal(t, shell.State{Screen: shell.Anchor(shell.TabProfile), Tab: shell.TabProfile}, h.app.shell)
	h.press(runes("H"))
	require.Equal(t, shell.New(), h.app.shell)
}

func TestCreateTextNote(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()
	before := h.noteCount()

	h.press(runes("1"))
	require.Equal(t, shell.KindCreate, h.kind())
	require.Equal(t, "text", h.app.shell.Screen.Method)

	h.press(ctrlS)
	require.Contains(t, h.app.View(), "Write something first")

	h.press(runes("Sprint review went well. Send the demo video to sales."), ctrlS)
	require.Equal(t, shell.KindNoteDetail, h.kind())
	require.NotEmpty(t, h.app.shell.Screen.NoteID)
	require.True(t, h.app.detail.loaded)
	require.Equal(t, "Sprint review went well", h.app.detail.note.Title)
	require.Equal(t, before+1, h.noteCount())
	require.False(t, h.app.shell.ShowsTabBar())

	h.press(escKey)
	require.Equal(t, shell.KindDashboard, h.kind())
}

func TestLeavingCreateCancelsGeneration(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()
	before := h.noteCount()

	h.press(runes("1"), runes("Quarterly numbers look strong."))
	_, _ = h.app.Update(ctrlS)
	require.True(t, h.app.create.generating)
	require.Contains(t, h.app.View(), progressMessages[0])
	seq := h.app.createSeq

	h.press(escKey)
	require.Equal(t, shell.KindDashboard, h.kind())

	_, cmd := h.app.Update(generateReadyMsg{seq: seq})
	require.Nil(t, cmd)
	_, cmd = h.app.Update(progressTickMsg{seq: seq})
	require.Nil(t, cmd)
	require.Equal(t, before, h.noteCount())
}

func TestFilePermissionGatesGenerate(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	src := filepath.Join(t.TempDir(), "lecture.txt")
	require.NoError(t, os.WriteFile(src, []byte("Cells divide by mitosis. Review chapter three."), 0o644))

	h.press(runes("2"))
	require.Equal(t, "pdf", h.app.shell.Screen.Method)
	require.Equal(t, permPending, h.app.create.perm)

	h.press(runes("n"))
	require.Equal(t, permDenied, h.app.create.perm)
	require.Contains(t, h.app.View(), "Generate is disabled")
	h.press(ctrlS, enterKey)
	require.False(t, h.app.create.generating)

	h.press(runes("p"), runes("y"))
	require.Equal(t, permGranted, h.app.create.perm)
	h.press(enterKey)
	require.Contains(t, h.app.View(), "Choose a file first")

	h.press(runes(src), enterKey)
	require.Equal(t, shell.KindNoteDetail, h.kind())
	require.Equal(t, repository.NotePDF, h.app.detail.note.Type)
	require.Equal(t, []string{"Review chapter three"}, actionTexts(h.app.detail.note))
}

func actionTexts(n repository.Note) []string {
	var out []string
	for _, a := range n.ActionItems {
		out = append(out, a.Text)
	}
	return out
}

func TestLogoutFromProfile(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	h.press(runes("P"))
	require.Equal(t, shell.KindProfile, h.kind())
	h.press(runes("L"))
	require.Equal(t, session.ScreenLogin, h.screen())
	require.Equal(t, shell.New(), h.app.shell)
	require.Equal(t, map[string]string{
		session.KeySeenOnboarding: "true",
		session.KeyAcceptedTerms:  "true",
	}, h.store.Snapshot())

	h.press(runes("ada@example.com"), tabKey, runes("pw"), enterKey)
	require.Equal(t, session.ScreenApp, h.screen())
	require.Equal(t, shell.KindDashboard, h.kind())
}

func TestStoreFailureKeepsLoginScreen(t *testing.T) {
	t.Parallel()
	h := newHarness(t, map[string]string{session.KeySeenOnboarding: "true", session.KeyAcceptedTerms: "true"})
	h.start()
	require.Equal(t, session.ScreenLogin, h.screen())

	h.store.Fail = errors.New("disk full")
	h.press(runes("ada@example.com"), tabKey, runes("pw"), enterKey)
	require.Equal(t, session.ScreenLogin, h.screen())
	require.Contains(t, h.app.status, "disk full")
	require.False(t, h.nav.Flags().LoggedIn)
}

func TestLoginSignupLateralMoves(t *testing.T) {
	t.Parallel()
	h := newHarness(t, map[string]string{session.KeySeenOnboarding: "true", session.KeyAcceptedTerms: "true"})
	h.start()

	h.press(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, session.ScreenSignup, h.screen())
	require.Len(t, h.app.form.inputs, 3)

	h.press(tabKey, runes("ada@example.com"), tabKey, runes("pw"), enterKey)
	require.Equal(t, session.ScreenSignup, h.screen())
	require.Equal(t, "Please fill in all fields", h.app.form.err)

	h.press(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Equal(t, session.ScreenLogin, h.screen())
	h.press(runes("not-an-email"), tabKey, runes("pw"), enterKey)
	require.Equal(t, "Please enter a valid email address", h.app.form.err)

	h.press(tea.KeyMsg{Type: tea.KeyCtrlN}, runes("Ada"), tabKey, runes("ada@example.com"), tabKey, runes("pw"), enterKey)
	require.Equal(t, session.ScreenApp, h.screen())
	require.Equal(t, "Ada", h.app.dash.profile.Name)
	require.Contains(t, h.app.View(), "Ada")
}

func TestNoteDetailActions(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	h.press(enterKey)
	require.Equal(t, shell.KindNoteDetail, h.kind())
	require.Equal(t, database.SampleNoteID("Team Meeting Notes"), h.app.shell.Screen.NoteID)
	require.True(t, h.app.detail.note.ActionItems[2].Done)

	h.press(downKey, downKey, spaceKey)
	require.False(t, h.app.detail.note.ActionItems[2].Done)

	h.press(runes("f"))
	require.False(t, h.app.detail.note.Favorite)

	h.press(runes("e"))
	require.Contains(t, h.app.status, "Exported to")
	_, err := os.Stat(filepath.Join(h.app.cfg.Export.Dir, "team-meeting-notes.md"))
	require.NoError(t, err)
	require.Contains(t, h.app.View(), "Send proposal to client by Friday")
}

func TestAllNotesSearchAndFilters(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	h.press(runes("N"))
	require.Len(t, h.app.list.notes, 8)
	require.Contains(t, h.app.View(), "All 8")

	h.press(runes("/"), runes("meetng"))
	require.True(t, h.app.list.searching)
	require.Len(t, h.app.list.notes, 1)
	require.Equal(t, "Team Meeting Notes", h.app.list.notes[0].Title)

	h.press(enterKey)
	require.False(t, h.app.list.searching)
	h.press(tabKey)
	require.Equal(t, "text", h.app.list.filter())
	require.Empty(t, h.app.list.notes)
	require.Contains(t, h.app.View(), "No notes found")

	h.press(escKey)
	require.Len(t, h.app.list.notes, 2)
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}
	h.press(shiftTab, shiftTab)
	require.Equal(t, "favorites", h.app.list.filter())
	require.Len(t, h.app.list.notes, 3)
	require.Contains(t, h.app.View(), "Favorites 3")
	h.press(shiftTab)
	require.Equal(t, "image", h.app.list.filter())
	require.Len(t, h.app.list.notes, 2)

	h.press(enterKey)
	require.Equal(t, shell.KindNoteDetail, h.kind())
	require.Equal(t, shell.TabNotes, h.app.shell.Tab)
	h.press(escKey)
	require.Equal(t, shell.KindAllNotes, h.kind())
}

func TestSettingsPersistAndReset(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	h.press(runes("P"), runes("s"))
	require.Equal(t, shell.KindSettings, h.kind())

	h.press(spaceKey)
	require.False(t, h.app.cfg.UI.PushNotifications)
	h.press(downKey, spaceKey)
	require.Equal(t, themeLight, h.app.theme.name)

	saved, err := config.Load(h.cfgPath)
	require.NoError(t, err)
	require.False(t, saved.UI.PushNotifications)
	require.Equal(t, themeLight, saved.UI.Theme)

	h.press(downKey, downKey, enterKey)
	require.True(t, h.app.settings.confirmReset)
	h.press(runes("n"))
	require.False(t, h.app.settings.confirmReset)
	require.Equal(t, 8, h.noteCount())

	h.press(enterKey, runes("y"))
	require.Equal(t, 0, h.noteCount())
	require.Equal(t, shell.KindDashboard, h.kind())
	require.Equal(t, "All data cleared", h.app.status)
	require.Equal(t, session.ScreenApp, h.screen())
}

func TestNotificationsMarkRead(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()
	require.Equal(t, 2, h.app.dash.unread)

	h.press(runes("n"))
	require.Len(t, h.app.inbox.items, 6)
	require.Contains(t, h.app.View(), "2 unread")

	h.press(enterKey)
	require.Contains(t, h.app.View(), "1 unread")
	h.press(runes("a"))
	require.Contains(t, h.app.View(), "0 unread")

	h.press(escKey)
	require.Equal(t, 0, h.app.dash.unread)
}

func TestConfigReloadSwapsTheme(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	cfg := h.app.cfg
	cfg.UI.Theme = themeLight
	h.app.Update(ConfigMsg(cfg))
	require.Equal(t, themeLight, h.app.theme.name)
}

func TestTipRotatesOnlyOnDashboard(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	_, cmd := h.app.Update(tipTickMsg{seq: h.app.tipSeq})
	require.NotNil(t, cmd)
	require.Equal(t, 1, h.app.dash.tip)

	stale := h.app.tipSeq
	h.press(runes("n"))
	_, cmd = h.app.Update(tipTickMsg{seq: stale})
	require.Nil(t, cmd)
	require.Equal(t, 1, h.app.dash.tip)
}

func TestResetFinishingAfterLogoutIsIgnored(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	h.press(runes("P"), runes("L"))
	require.Equal(t, session.ScreenLogin, h.screen())
	seq := h.app.tipSeq
	tip := h.app.dash.tip

	_, cmd := h.app.Update(resetDoneMsg{})
	require.Nil(t, cmd)
	require.Empty(t, h.app.status)
	require.Equal(t, seq, h.app.tipSeq)

	_, cmd = h.app.Update(tipTickMsg{seq: h.app.tipSeq})
	require.Nil(t, cmd)
	require.Equal(t, tip, h.app.dash.tip)
	require.Equal(t, session.ScreenLogin, h.screen())
}

func TestDeleteNoteFromDetail(t *testing.T) {
	t.Parallel()
	h := newHarness(t, allFlagsSet)
	h.start()

	h.press(enterKey)
	require.Equal(t, shell.KindNoteDetail, h.kind())
	id := h.app.shell.Screen.NoteID

	h.press(runes("D"))
	require.True(t, h.app.detail.confirmDelete)
	require.Contains(t, h.app.View(), "Delete this note? (y/n)")
	h.press(runes("n"))
	require.False(t, h.app.detail.confirmDelete)
	require.Equal(t, 8, h.noteCount())

	h.press(runes("D"), runes("y"))
	require.Equal(t, 7, h.noteCount())
	require.Equal(t, shell.KindDashboard, h.kind())
	require.Equal(t, "Note deleted", h.app.status)
	for _, n := range h.app.dash.recent {
		require.NotEqual(t, id, n.ID)
	}
}

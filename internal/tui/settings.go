package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	settingPush = iota
	settingDarkMode
	settingAutoSummarize
	settingReset
	settingLogout
	settingCount
)

type settingsView struct {
	cursor       int
	confirmReset bool
}

func (a *App) settingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &a.settings
	if s.confirmReset {
		switch {
		case key.Matches(m, a.keys.Yes):
			s.confirmReset = false
			return a, a.resetCmd()
		case key.Matches(m, a.keys.No):
			s.confirmReset = false
		}
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.back()
	case key.Matches(m, a.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if s.cursor < settingCount-1 {
			s.cursor++
		}
	case key.Matches(m, a.keys.Toggle), key.Matches(m, a.keys.Enter):
		switch s.cursor {
		case settingPush:
			a.cfg.UI.PushNotifications = !a.cfg.UI.PushNotifications
			return a, a.saveConfigCmd()
		case settingDarkMode:
			return a, a.toggleTheme()
		case settingAutoSummarize:
			a.cfg.UI.AutoSummarize = !a.cfg.UI.AutoSummarize
			return a, a.saveConfigCmd()
		case settingReset:
			s.confirmReset = true
		case settingLogout:
			return a, a.logout()
		}
	}
	return a, nil
}

func (a *App) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := a.services.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return resetDoneMsg{}
	}
}

func (a *App) renderSettings() string {
	t := a.theme
	onOff := func(v bool) string {
		if v {
			return t.success.Render("on")
		}
		return t.muted.Render("off")
	}
	rows := []string{
		"Push notifications  " + onOff(a.cfg.UI.PushNotifications),
		"Dark mode           " + onOff(t.name == themeDark),
		"Auto-summarize      " + onOff(a.cfg.UI.AutoSummarize),
		t.danger.Render("Clear all data"),
		t.danger.Render("Log out"),
	}
	var b strings.Builder
	b.WriteString(t.title.Render("Settings") + "\n\n")
	for i, r := range rows {
		if i == settingReset {
			b.WriteString("\n" + t.muted.Render("Danger Zone") + "\n")
		}
		prefix := "  "
		if i == a.settings.cursor {
			prefix = t.selected.Render("› ")
		}
		b.WriteString(prefix + r + "\n")
	}
	if a.settings.confirmReset {
		b.WriteString("\n" + t.danger.Render("Delete every note and notification? (y/n)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jask/notewise/internal/database/repository"
)

type inboxView struct {
	cursor int
	items  []repository.Notification
}

func (a *App) loadNotifications() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Notifications.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return notificationsMsg(list)
	}
}

func (a *App) inboxKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &a.inbox
	switch {
	case key.Matches(m, a.keys.Back):
		return a, a.back()
	case key.Matches(m, a.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case key.Matches(m, a.keys.Enter):
		if len(v.items) == 0 || v.items[v.cursor].Read {
			return a, nil
		}
		id := v.items[v.cursor].ID
		return a, func() tea.Msg {
			if err := a.services.Notifications.MarkRead(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return a.loadNotifications()()
		}
	case key.Matches(m, a.keys.MarkAll):
		return a, func() tea.Msg {
			if err := a.services.Notifications.MarkAllRead(a.ctx); err != nil {
				return errMsg{err}
			}
			return a.loadNotifications()()
		}
	}
	return a, nil
}

func (a *App) renderInbox() string {
	t := a.theme
	unread := 0
	for _, n := range a.inbox.items {
		if !n.Read {
			unread++
		}
	}
	var b strings.Builder
	b.WriteString(t.title.Render("Notifications") + "  " + t.muted.Render(fmt.Sprintf("%d unread", unread)) + "\n\n")
	if len(a.inbox.items) == 0 {
		b.WriteString(t.muted.Render("You're all caught up"))
		return b.String()
	}
	for i, n := range a.inbox.items {
		prefix := "  "
		if i == a.inbox.cursor {
			prefix = t.selected.Render("› ")
		}
		dot := " "
		title := t.muted.Render(n.Title)
		if !n.Read {
			dot = t.accent.Render("●")
			title = t.text.Render(n.Title)
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", prefix, dot, title, t.muted.Render(humanize.Time(n.CreatedAt)))
		b.WriteString("     " + t.muted.Render(n.Message) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

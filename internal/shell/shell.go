// Package shell holds the navigation state of the signed-in area: which
// screen is showing and which bottom tab anchors it.
package shell

import (
	"errors"
	"strings"
)

// Kind names a screen inside the signed-in area.
type Kind string

const (
	KindDashboard     Kind = "dashboard"
	KindCreate        Kind = "create"
	KindNoteDetail    Kind = "noteDetail"
	KindAllNotes      Kind = "allNotes"
	KindProfile       Kind = "profile"
	KindSettings      Kind = "settings"
	KindNotifications Kind = "notifications"
)

// Tab is a bottom-navigation tab.
type Tab string

const (
	TabHome    Tab = "home"
	TabNotes   Tab = "notes"
	TabProfile Tab = "profile"
)

// Tabs lists the tabs in bar order.
func Tabs() []Tab { return []Tab{TabHome, TabNotes, TabProfile} }

var ErrEmptyNoteID = errors.New("shell: note id required")

// Screen is the current signed-in screen plus whatever it needs to render.
type Screen struct {
	Kind   Kind
	Method string // optional hint for KindCreate
	NoteID string // always set for KindNoteDetail
}

// Anchor is the screen a tab resolves to.
func Anchor(t Tab) Screen {
	switch t {
	case TabNotes:
		return Screen{Kind: KindAllNotes}
	case TabProfile:
		return Screen{Kind: KindProfile}
	default:
		return Screen{Kind: KindDashboard}
	}
}

// State pairs the screen with the active tab. It is a value: every operation
// returns a complete new State, so a tab and its screen always change together.
type State struct {
	Screen Screen
	Tab    Tab
}

// New is the state a fresh signed-in session starts in.
func New() State {
	return State{Screen: Anchor(TabHome), Tab: TabHome}
}

func (s State) CreateNote(method string) State {
	s.Screen = Screen{Kind: KindCreate, Method: strings.TrimSpace(method)}
	return s
}

func (s State) ViewNote(noteID string) (State, error) {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return s, ErrEmptyNoteID
	}
	s.Screen = Screen{Kind: KindNoteDetail, NoteID: noteID}
	return s, nil
}

// NoteCreated shows the note that was just generated.
func (s State) NoteCreated(noteID string) (State, error) {
	return s.ViewNote(noteID)
}

func (s State) OpenNotifications() State {
	s.Screen = Screen{Kind: KindNotifications}
	return s
}

func (s State) OpenSettings() State {
	s.Screen = Screen{Kind: KindSettings}
	return s
}

// Back returns to the active tab's anchor. There is no history stack: two
// backs from different deep screens both land on the same anchor.
func (s State) Back() State {
	s.Screen = Anchor(s.Tab)
	return s
}

func (s State) ChangeTab(t Tab) State {
	switch t {
	case TabHome, TabNotes, TabProfile:
	default:
		return s
	}
	return State{Screen: Anchor(t), Tab: t}
}

// Reset is applied on logout.
func (s State) Reset() State { return New() }

// ShowsTabBar reports whether the bottom bar and the floating create action
// are visible.
func (s State) ShowsTabBar() bool {
	switch s.Screen.Kind {
	case KindDashboard, KindAllNotes, KindProfile:
		return true
	}
	return false
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Skip     key.Binding
	NextFld  key.Binding
	PrevFld  key.Binding
	ToSignup key.Binding
	ToLogin  key.Binding

	Home    key.Binding
	Notes   key.Binding
	Profile key.Binding
	Create  key.Binding

	QuickCreate   key.Binding
	Notifications key.Binding
	Theme         key.Binding
	AllNotes      key.Binding
	Settings      key.Binding
	Logout        key.Binding

	Generate key.Binding
	Allow    key.Binding
	Deny     key.Binding
	Ask      key.Binding

	Favorite key.Binding
	Export   key.Binding
	Delete   key.Binding

	Search     key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding

	MarkAll key.Binding
	Yes     key.Binding
	No      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
		Right:    key.NewBinding(key.WithKeys("right", "l", "enter"), key.WithHelp("→", "next")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		NextFld:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevFld:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		ToSignup: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "sign up")),
		ToLogin:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log in")),

		Home:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		Notes:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notes")),
		Profile: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "profile")),
		Create:  key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "new note")),

		QuickCreate:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "quick create")),
		Notifications: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
		Theme:         key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		AllNotes:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all notes")),
		Settings:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Logout:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),

		Generate: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "generate")),
		Allow:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "allow")),
		Deny:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "deny")),
		Ask:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "ask again")),

		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Delete:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),

		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		PrevFilter: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous filter")),

		MarkAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all read")),
		Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		No:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

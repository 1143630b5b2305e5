package tui

import "github.com/charmbracelet/lipgloss"

const (
	themeDark  = "dark"
	themeLight = "light"
)

type palette struct {
	fg, muted, accent, success, danger, border lipgloss.Color
}

var palettes = map[string]palette{
	themeDark: {
		fg:      lipgloss.Color("#E5E7EB"),
		muted:   lipgloss.Color("#9CA3AF"),
		accent:  lipgloss.Color("#A78BFA"),
		success: lipgloss.Color("#34D399"),
		danger:  lipgloss.Color("#F87171"),
		border:  lipgloss.Color("#4B5563"),
	},
	themeLight: {
		fg:      lipgloss.Color("#111827"),
		muted:   lipgloss.Color("#6B7280"),
		accent:  lipgloss.Color("#7C3AED"),
		success: lipgloss.Color("#059669"),
		danger:  lipgloss.Color("#DC2626"),
		border:  lipgloss.Color("#D1D5DB"),
	},
}

type theme struct {
	name      string
	title     lipgloss.Style
	text      lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	success   lipgloss.Style
	danger    lipgloss.Style
	card      lipgloss.Style
	selected  lipgloss.Style
	tabActive lipgloss.Style
	tab       lipgloss.Style
	chip      lipgloss.Style
	chipOn    lipgloss.Style
}

func newTheme(name string) theme {
	p, ok := palettes[name]
	if !ok {
		name = themeDark
		p = palettes[themeDark]
	}
	return theme{
		name:      name,
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		text:      lipgloss.NewStyle().Foreground(p.fg),
		muted:     lipgloss.NewStyle().Foreground(p.muted),
		accent:    lipgloss.NewStyle().Foreground(p.accent),
		success:   lipgloss.NewStyle().Foreground(p.success),
		danger:    lipgloss.NewStyle().Foreground(p.danger),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tabActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.accent).Padding(0, 2),
		tab:       lipgloss.NewStyle().Foreground(p.muted).Padding(0, 2),
		chip:      lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		chipOn:    lipgloss.NewStyle().Bold(true).Foreground(p.fg).Background(p.accent).Padding(0, 1),
	}
}

func (t theme) toggled() string {
	if t.name == themeDark {
		return themeLight
	}
	return themeDark
}

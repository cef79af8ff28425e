package tui

import (
	"folio/models"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	background lipgloss.Color
	foreground lipgloss.Color
	muted      lipgloss.Color
	accent     lipgloss.Color
	border     lipgloss.Color
	errorText  lipgloss.Color
}

var palettes = map[models.Theme]palette{
	models.ThemeDark: {
		background: lipgloss.Color("#000000"),
		foreground: lipgloss.Color("#FFFFFF"),
		muted:      lipgloss.Color("#9CA3AF"),
		accent:     lipgloss.Color("#A78BFA"),
		border:     lipgloss.Color("#3F3F46"),
		errorText:  lipgloss.Color("#F87171"),
	},
	models.ThemeLight: {
		background: lipgloss.Color("#FFFFFF"),
		foreground: lipgloss.Color("#111827"),
		muted:      lipgloss.Color("#4B5563"),
		accent:     lipgloss.Color("#6D28D9"),
		border:     lipgloss.Color("#D4D4D8"),
		errorText:  lipgloss.Color("#B91C1C"),
	},
}

// Styles is the full set of styles the view renders with
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Section    lipgloss.Style
	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	Muted      lipgloss.Style
	Tag        lipgloss.Style
	Dot        lipgloss.Style
	ActiveDot  lipgloss.Style
	Error      lipgloss.Style
	Fading     lipgloss.Style
	InputLabel lipgloss.Style
}

func NewStyles(theme models.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[models.ThemeDark]
	}

	return Styles{
		App: lipgloss.NewStyle().
			Background(p.background).
			Foreground(p.foreground).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(p.foreground).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted),
		Section: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			MarginTop(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1).
			Width(72),
		CardTitle: lipgloss.NewStyle().
			Foreground(p.foreground).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Tag: lipgloss.NewStyle().
			Foreground(p.accent).
			Padding(0, 1),
		Dot: lipgloss.NewStyle().
			Foreground(p.border),
		ActiveDot: lipgloss.NewStyle().
			Foreground(p.accent),
		Error: lipgloss.NewStyle().
			Foreground(p.errorText),
		Fading: lipgloss.NewStyle().
			Faint(true),
		InputLabel: lipgloss.NewStyle().
			Foreground(p.muted),
	}
}

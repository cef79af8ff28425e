package tui

import (
	"time"

	"folio/models"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultFlipDelay   = 300 * time.Millisecond
	DefaultSettleDelay = 600 * time.Millisecond
)

// ThemeStore persists the theme preference
type ThemeStore interface {
	LoadTheme() (models.Theme, bool, error)
	SaveTheme(theme models.Theme) error
}

// ThemeDetector reports the environment's preferred theme, ok is false when unknown
type ThemeDetector func() (theme models.Theme, ok bool)

type themeFlipMsg struct{}

type themeSettleMsg struct{}

// ThemeController owns the theme preference and its timed toggle transition.
//
// Toggle marks the controller as transitioning right away, flips and persists the theme
// after FlipDelay and clears the transition after SettleDelay. The timers of overlapping
// toggles are never cancelled, so each of them flips once.
type ThemeController struct {
	theme         models.Theme
	transitioning bool
	styles        Styles

	store       ThemeStore
	FlipDelay   time.Duration
	SettleDelay time.Duration
}

func NewThemeController(store ThemeStore, detect ThemeDetector) *ThemeController {
	t := &ThemeController{
		store:       store,
		FlipDelay:   DefaultFlipDelay,
		SettleDelay: DefaultSettleDelay,
	}
	t.apply(initialTheme(store, detect))
	return t
}

func initialTheme(store ThemeStore, detect ThemeDetector) models.Theme {
	if store != nil {
		theme, ok, err := store.LoadTheme()
		if err != nil {
			log.WithFields(log.Fields{
				"error": err,
			}).Warn("Could not read persisted theme")
		}
		if ok {
			return theme
		}
	}

	if detect != nil {
		if theme, ok := detect(); ok && theme.Valid() {
			return theme
		}
	}

	return models.ThemeDark
}

func (t *ThemeController) Theme() models.Theme {
	return t.theme
}

func (t *ThemeController) Transitioning() bool {
	return t.transitioning
}

// Styles is the style set for the current theme
func (t *ThemeController) Styles() Styles {
	return t.styles
}

// Toggle starts a transition and returns the commands driving its two phases
func (t *ThemeController) Toggle() tea.Cmd {
	t.transitioning = true

	return tea.Batch(
		tea.Tick(t.FlipDelay, func(time.Time) tea.Msg { return themeFlipMsg{} }),
		tea.Tick(t.SettleDelay, func(time.Time) tea.Msg { return themeSettleMsg{} }),
	)
}

// flip switches the theme, persists it and applies the new styles
func (t *ThemeController) flip() {
	next := t.theme.Opposite()
	t.apply(next)

	if t.store == nil {
		return
	}
	if err := t.store.SaveTheme(next); err != nil {
		log.WithFields(log.Fields{
			"theme": next,
			"error": err,
		}).Warn("Could not persist theme")
	}
}

func (t *ThemeController) settle() {
	t.transitioning = false
}

func (t *ThemeController) apply(theme models.Theme) {
	t.theme = theme
	t.styles = NewStyles(theme)
}

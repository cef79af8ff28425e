package tui

import (
	"fmt"
	"strconv"
	"strings"

	"folio/models"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

const summaryLength = 280

// Options configures the client model
type Options struct {
	Name          string
	Tagline       string
	Projects      []models.Project
	DefaultHandle string

	Fetcher     ArticleFetcher
	Themes      ThemeStore
	DetectTheme ThemeDetector

	// OpenURL and CopyText act on the link of the shown item, both may be nil
	OpenURL  func(url string) error
	CopyText func(text string) error
}

// Model is the top-level bubbletea model of the portfolio client
type Model struct {
	opts Options

	projects *Carousel
	articles *Carousel
	router   *Router
	feed     *FeedState
	theme    *ThemeController

	input     textinput.Model
	spinner   spinner.Model
	help      help.Model
	keys      KeyMap
	converter *md.Converter

	status string
	width  int
}

func New(opts Options) Model {
	projects := NewCarousel(len(opts.Projects))
	articles := NewCarousel(0)

	input := textinput.New()
	input.Placeholder = "@handle"
	input.Prompt = "handle › "
	input.CharLimit = 64
	input.SetValue(opts.DefaultHandle)

	return Model{
		opts:      opts,
		projects:  projects,
		articles:  articles,
		router:    NewRouter(projects, articles),
		feed:      NewFeedState(opts.Fetcher, articles),
		theme:     NewThemeController(opts.Themes, opts.DetectTheme),
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      DefaultKeyMap(),
		converter: md.NewConverter("", true, nil),
	}
}

// Init loads the default handle's articles on start
func (m Model) Init() tea.Cmd {
	if m.opts.DefaultHandle == "" {
		return nil
	}
	return m.fetch(m.opts.DefaultHandle)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case ArticlesLoadedMsg:
		m.feed.Resolve(msg)
		return m, nil

	case themeFlipMsg:
		m.theme.flip()
		return m, nil

	case themeSettleMsg:
		m.theme.settle()
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain die out once nothing is loading
		if m.feed.Phase() != Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.router.BeginGesture(msg.X)
		}
	case tea.MouseActionMotion:
		m.router.MoveGesture(msg.X)
	case tea.MouseActionRelease:
		m.router.EndGesture()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.router.Route(m.direction(msg), m.input.Focused()) {
		m.status = ""
		return m, nil
	}

	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.input.Blur()
			m.status = ""
			return m, m.load()
		case key.Matches(msg, m.keys.Blur):
			m.input.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusInput):
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Reload):
		m.status = ""
		return m, m.load()

	case key.Matches(msg, m.keys.Jump):
		target := m.router.Target()
		i, err := strconv.Atoi(msg.String())
		if err == nil && i >= 1 && i <= target.Len() {
			target.JumpTo(i - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		return m, m.theme.Toggle()

	case key.Matches(msg, m.keys.Open):
		m.status = m.withLink("Opened", m.opts.OpenURL)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.status = m.withLink("Copied", m.opts.CopyText)
		return m, nil
	}

	return m, nil
}

func (m Model) direction(msg tea.KeyMsg) Direction {
	switch {
	case key.Matches(msg, m.keys.Next):
		return Forward
	case key.Matches(msg, m.keys.Prev):
		return Backward
	default:
		return None
	}
}

func (m Model) load() tea.Cmd {
	return m.fetch(strings.TrimSpace(m.input.Value()))
}

// fetch starts loading username and animates the spinner while it runs
func (m Model) fetch(username string) tea.Cmd {
	return tea.Batch(m.feed.Trigger(username), m.spinner.Tick)
}

// currentLink is the link of the item the router currently targets
func (m Model) currentLink() string {
	target := m.router.Target()
	if target.Len() == 0 {
		return ""
	}
	if target == m.articles {
		return m.feed.Articles()[target.Index()].Link
	}
	return m.opts.Projects[target.Index()].Link
}

func (m Model) withLink(verb string, action func(string) error) string {
	link := m.currentLink()
	if link == "" || action == nil {
		return "No link for this item"
	}
	if err := action(link); err != nil {
		log.WithFields(log.Fields{
			"link":  link,
			"error": err,
		}).Warn("Link action failed")
		return fmt.Sprintf("Could not use link: %v", err)
	}
	return fmt.Sprintf("%s %s", verb, link)
}

// View implements tea.Model
func (m Model) View() string {
	s := m.theme.Styles()

	var b strings.Builder

	b.WriteString(s.Title.Render(m.opts.Name))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render(m.opts.Tagline))
	b.WriteString("\n")

	b.WriteString(s.Section.Render("Selected Works"))
	b.WriteString("\n")
	b.WriteString(m.projectView(s))
	b.WriteString("\n")

	b.WriteString(s.Section.Render("Articles"))
	b.WriteString("\n")
	b.WriteString(s.InputLabel.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.articleView(s))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(s.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	app := s.App
	if m.theme.Transitioning() {
		app = app.Inherit(s.Fading)
	}
	if m.width > 0 {
		app = app.Width(m.width)
	}
	return app.Render(b.String())
}

func (m Model) projectView(s Styles) string {
	if m.projects.Len() == 0 {
		return s.Muted.Render("No projects configured.")
	}

	project := m.opts.Projects[m.projects.Index()]
	tags := make([]string, len(project.Tags))
	for i, tag := range project.Tags {
		tags[i] = s.Tag.Render(tag)
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		s.CardTitle.Render(project.Title),
		s.Muted.Render(project.Description),
		lipgloss.JoinHorizontal(lipgloss.Top, tags...),
	)
	return lipgloss.JoinVertical(lipgloss.Left, s.Card.Render(card), dots(s, m.projects))
}

func (m Model) articleView(s Styles) string {
	switch m.feed.Phase() {
	case Idle:
		return s.Muted.Render("Enter a handle to load articles.")
	case Loading:
		return s.Muted.Render(m.spinner.View() + " Loading articles…")
	case Failed:
		return s.Error.Render(m.feed.Message())
	}

	articles := m.feed.Articles()
	if len(articles) == 0 {
		return s.Muted.Render(fmt.Sprintf("No articles found for %s.", m.feed.Username()))
	}

	article := articles[m.articles.Index()]
	lines := []string{
		s.CardTitle.Render(article.Title),
		s.Muted.Render(fmt.Sprintf("%s · %s", article.Author, article.PubDate)),
	}
	if summary := m.summary(article.Description); summary != "" {
		lines = append(lines, summary)
	}
	lines = append(lines, s.Muted.Render(article.Link))

	card := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.JoinVertical(lipgloss.Left, s.Card.Render(card), dots(s, m.articles))
}

// summary converts the HTML description to markdown and shortens it
func (m Model) summary(description string) string {
	if description == "" {
		return ""
	}

	text, err := m.converter.ConvertString(description)
	if err != nil {
		text = description
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > summaryLength {
		return string(runes[:summaryLength]) + "…"
	}
	return text
}

func dots(s Styles, c *Carousel) string {
	var b strings.Builder
	for i := 0; i < c.Len(); i++ {
		if i == c.Index() {
			b.WriteString(s.ActiveDot.Render("●"))
		} else {
			b.WriteString(s.Dot.Render("○"))
		}
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}

package tui

import (
	"errors"
	"testing"

	"folio/models"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProjects(n int) []models.Project {
	projects := make([]models.Project, n)
	for i := range projects {
		projects[i] = models.Project{
			Title: "Project",
			Tags:  []string{"Go"},
			Link:  "https://github.com/jane/project",
		}
	}
	return projects
}

func newTestModel(fetcher ArticleFetcher, projects int) Model {
	return New(Options{
		Name:          "Jane Doe",
		Tagline:       "Developer",
		Projects:      testProjects(projects),
		DefaultHandle: "@jane",
		Fetcher:       fetcher,
		Themes:        &memoryThemeStore{theme: models.ThemeDark},
	})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

// loadedMsg runs the fetch command inside a batch and returns its result
func loadedMsg(t *testing.T, cmd tea.Cmd) ArticlesLoadedMsg {
	t.Helper()
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	for _, c := range batch {
		if msg, ok := c().(ArticlesLoadedMsg); ok {
			return msg
		}
	}
	require.Fail(t, "no fetch in batch")
	return ArticlesLoadedMsg{}
}

func TestModelInitLoadsDefaultHandle(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]models.Article{"@jane": sampleArticles(3)}}
	m := newTestModel(fetcher, 3)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, Loading, m.feed.Phase())

	loaded := loadedMsg(t, cmd)
	assert.Equal(t, "@jane", loaded.Username)

	m = update(t, m, loaded)
	assert.Equal(t, Success, m.feed.Phase())
	assert.Equal(t, 3, m.articles.Len())
	assert.Contains(t, m.View(), "Article 1")
}

func TestModelInitWithoutHandleIsIdle(t *testing.T) {
	m := New(Options{Projects: testProjects(1), Fetcher: &stubFetcher{}})

	assert.Nil(t, m.Init())
	assert.Equal(t, Idle, m.feed.Phase())
}

func TestModelSpinnerOnlyTicksWhileLoading(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]models.Article{"@jane": sampleArticles(1)}}
	m := newTestModel(fetcher, 1)

	batch, ok := m.Init()().(tea.BatchMsg)
	require.True(t, ok)

	var tick spinner.TickMsg
	var loaded ArticlesLoadedMsg
	for _, c := range batch {
		switch msg := c().(type) {
		case spinner.TickMsg:
			tick = msg
		case ArticlesLoadedMsg:
			loaded = msg
		}
	}

	_, cmd := m.Update(tick)
	assert.NotNil(t, cmd, "spinner keeps ticking while loading")

	m = update(t, m, loaded)
	require.Equal(t, Success, m.feed.Phase())

	_, cmd = m.Update(tick)
	assert.Nil(t, cmd, "spinner stops once loaded")
}

func TestModelKeysFollowLoadedArticles(t *testing.T) {
	m := newTestModel(&stubFetcher{}, 5)

	m, _ = press(t, m, "right", "l")
	assert.Equal(t, 2, m.projects.Index())

	m = update(t, m, ArticlesLoadedMsg{Username: "@jane", Articles: sampleArticles(4)})

	m, _ = press(t, m, "left")
	assert.Equal(t, 3, m.articles.Index())
	assert.Equal(t, 2, m.projects.Index())
}

func TestModelInputFocusSwallowsArrows(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]models.Article{"@janet": sampleArticles(2)}}
	m := newTestModel(fetcher, 5)

	m, _ = press(t, m, "/")
	require.True(t, m.input.Focused())

	m, _ = press(t, m, "right", "l", "t")
	assert.Equal(t, 0, m.projects.Index())
	assert.Equal(t, "@janelt", m.input.Value())
	assert.False(t, m.theme.Transitioning())

	m, _ = press(t, m, "esc")
	assert.False(t, m.input.Focused())

	m, _ = press(t, m, "right")
	assert.Equal(t, 1, m.projects.Index())
}

func TestModelSubmitTriggersFetch(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]models.Article{"@janet": sampleArticles(2)}}
	m := newTestModel(fetcher, 5)

	m, _ = press(t, m, "/", "t")
	m, cmd := press(t, m, "enter")

	assert.False(t, m.input.Focused())
	assert.Equal(t, Loading, m.feed.Phase())
	require.NotNil(t, cmd)

	m = update(t, m, loadedMsg(t, cmd))
	assert.Equal(t, []string{"@janet"}, fetcher.calls)
	assert.Equal(t, 2, m.articles.Len())
}

func TestModelJumpStaysInRange(t *testing.T) {
	m := newTestModel(&stubFetcher{}, 3)

	m, _ = press(t, m, "3")
	assert.Equal(t, 2, m.projects.Index())

	m, _ = press(t, m, "9")
	assert.Equal(t, 2, m.projects.Index())
}

func TestModelMouseDrag(t *testing.T) {
	m := newTestModel(&stubFetcher{}, 5)

	m = update(t, m, tea.MouseMsg{X: 120, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 90, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 60, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 60, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Equal(t, 1, m.projects.Index())
}

func TestModelThemeToggle(t *testing.T) {
	m := newTestModel(&stubFetcher{}, 1)

	m, cmd := press(t, m, "t")
	require.NotNil(t, cmd)
	assert.True(t, m.theme.Transitioning())
	assert.Equal(t, models.ThemeDark, m.theme.Theme())

	m = update(t, m, themeFlipMsg{})
	assert.Equal(t, models.ThemeLight, m.theme.Theme())

	m = update(t, m, themeSettleMsg{})
	assert.False(t, m.theme.Transitioning())
}

func TestModelOpenAndCopyLinks(t *testing.T) {
	var opened, copied string
	m := New(Options{
		Projects: testProjects(2),
		Themes:   &memoryThemeStore{},
		OpenURL: func(url string) error {
			opened = url
			return nil
		},
		CopyText: func(text string) error {
			copied = text
			return errors.New("no clipboard")
		},
	})

	m, _ = press(t, m, "o")
	assert.Equal(t, "https://github.com/jane/project", opened)
	assert.Contains(t, m.status, "Opened")

	m = update(t, m, ArticlesLoadedMsg{Articles: sampleArticles(2)})
	m, _ = press(t, m, "right", "y")
	assert.Equal(t, "https://medium.com/@jane/article-2", copied)
	assert.Contains(t, m.status, "no clipboard")
}

func TestModelViewStates(t *testing.T) {
	m := newTestModel(&stubFetcher{}, 1)
	assert.Contains(t, m.View(), "Enter a handle")

	m = update(t, m, ArticlesLoadedMsg{Username: "@jane", Articles: []models.Article{}})
	assert.Contains(t, m.View(), "No articles found for")

	m = update(t, m, ArticlesLoadedMsg{Username: "@jane", Err: errors.New("boom")})
	assert.Contains(t, m.View(), genericFetchError)
}

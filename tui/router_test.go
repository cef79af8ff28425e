package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouterTargetsProjectsUntilArticlesLoad(t *testing.T) {
	projects := NewCarousel(5)
	articles := NewCarousel(0)
	router := NewRouter(projects, articles)

	assert.True(t, router.Route(Forward, false))
	assert.True(t, router.Route(Forward, false))
	assert.Equal(t, 2, projects.Index())
	assert.Same(t, projects, router.Target())

	articles.Reset(3)

	assert.True(t, router.Route(Backward, false))
	assert.Equal(t, 2, articles.Index())
	assert.Equal(t, 2, projects.Index())
	assert.Same(t, articles, router.Target())

	articles.Reset(0)
	assert.Same(t, projects, router.Target())
}

func TestRouterIgnoresKeysWhileInputFocused(t *testing.T) {
	projects := NewCarousel(5)
	router := NewRouter(projects, NewCarousel(0))

	assert.False(t, router.Route(Forward, true))
	assert.False(t, router.Route(None, false))
	assert.Equal(t, 0, projects.Index())
}

func TestRouterGestureStaysOnStartingCarousel(t *testing.T) {
	projects := NewCarousel(5)
	articles := NewCarousel(0)
	router := NewRouter(projects, articles)

	router.BeginGesture(200)
	articles.Reset(4)
	router.MoveGesture(100)

	assert.Equal(t, Forward, router.EndGesture())
	assert.Equal(t, 1, projects.Index())
	assert.Equal(t, 0, articles.Index())

	assert.Equal(t, None, router.EndGesture())
}

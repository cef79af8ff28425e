package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"folio/client"
	"folio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	articles map[string][]models.Article
	err      error
	calls    []string
}

func (s *stubFetcher) Articles(ctx context.Context, username string) ([]models.Article, error) {
	s.calls = append(s.calls, username)
	if s.err != nil {
		return nil, s.err
	}
	return s.articles[username], nil
}

func sampleArticles(n int) []models.Article {
	articles := make([]models.Article, n)
	for i := range articles {
		articles[i] = models.Article{
			Title:   fmt.Sprintf("Article %d", i+1),
			Link:    fmt.Sprintf("https://medium.com/@jane/article-%d", i+1),
			PubDate: "Mon, 01 Sep 2025 10:00:00 GMT",
			Author:  "Jane",
		}
	}
	return articles
}

func TestFeedStateSuccessResetsCarousel(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]models.Article{"jane": sampleArticles(4)}}
	carousel := NewCarousel(6)
	carousel.JumpTo(5)
	feed := NewFeedState(fetcher, carousel)

	assert.Equal(t, Idle, feed.Phase())

	cmd := feed.Trigger("jane")
	assert.Equal(t, Loading, feed.Phase())
	assert.Empty(t, fetcher.calls, "fetch happens when the command runs")

	msg, ok := cmd().(ArticlesLoadedMsg)
	require.True(t, ok)
	feed.Resolve(msg)

	assert.Equal(t, Success, feed.Phase())
	assert.Equal(t, []string{"jane"}, fetcher.calls)
	assert.Len(t, feed.Articles(), 4)
	assert.Equal(t, 0, carousel.Index())
	assert.Equal(t, 4, carousel.Len())
}

func TestFeedStateEmptyResult(t *testing.T) {
	feed := NewFeedState(&stubFetcher{}, NewCarousel(0))

	feed.Resolve(feed.Trigger("nobody")().(ArticlesLoadedMsg))

	assert.Equal(t, Success, feed.Phase())
	assert.NotNil(t, feed.Articles())
	assert.Empty(t, feed.Articles())
}

func TestFeedStateErrorClearsArticles(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "endpoint message",
			err:     &client.APIError{StatusCode: 400, Message: "Username is required"},
			message: "Username is required",
		},
		{
			name:    "transport failure",
			err:     errors.New("dial tcp: connection refused"),
			message: genericFetchError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carousel := NewCarousel(0)
			feed := NewFeedState(nil, carousel)
			feed.Resolve(ArticlesLoadedMsg{Username: "jane", Articles: sampleArticles(3)})
			carousel.Next()

			feed.Resolve(ArticlesLoadedMsg{Username: "jane", Err: tt.err})

			assert.Equal(t, Failed, feed.Phase())
			assert.Equal(t, tt.message, feed.Message())
			assert.Empty(t, feed.Articles())
			assert.Equal(t, 0, carousel.Len())
			assert.Equal(t, 0, carousel.Index())
		})
	}
}

func TestFeedStateLastResolvedWins(t *testing.T) {
	fetcher := &stubFetcher{articles: map[string][]models.Article{
		"first":  sampleArticles(2),
		"second": sampleArticles(5),
	}}
	carousel := NewCarousel(0)
	feed := NewFeedState(fetcher, carousel)

	first := feed.Trigger("first")
	second := feed.Trigger("second")

	// The second request resolves before the first one
	feed.Resolve(second().(ArticlesLoadedMsg))
	feed.Resolve(first().(ArticlesLoadedMsg))

	assert.Equal(t, Success, feed.Phase())
	assert.Len(t, feed.Articles(), 2)
	assert.Equal(t, 2, carousel.Len())
}

func TestFeedStateRetriggerAfterError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	feed := NewFeedState(fetcher, NewCarousel(0))

	feed.Resolve(feed.Trigger("jane")().(ArticlesLoadedMsg))
	assert.Equal(t, Failed, feed.Phase())

	fetcher.err = nil
	fetcher.articles = map[string][]models.Article{"jane": sampleArticles(1)}
	feed.Resolve(feed.Trigger("jane")().(ArticlesLoadedMsg))

	assert.Equal(t, Success, feed.Phase())
	assert.Empty(t, feed.Message())
	assert.Equal(t, []string{"jane", "jane"}, fetcher.calls)
}

package feeds_test

import (
	"context"
	"errors"
	"testing"

	"folio/feeds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	body    string
	err     error
	handles []string
}

func (s *stubSource) Fetch(ctx context.Context, handle string) (string, error) {
	s.handles = append(s.handles, handle)
	return s.body, s.err
}

func TestIngesterRequiresUsername(t *testing.T) {
	for _, username := range []string{"", "@", "   "} {
		source := &stubSource{}
		ingester := feeds.NewIngester(source)

		articles, err := ingester.Articles(context.Background(), username)

		assert.Nil(t, articles)
		assert.ErrorIs(t, err, feeds.ErrUsernameRequired)
		assert.Empty(t, source.handles, "no upstream call for %q", username)
	}
}

func TestIngesterStripsLeadingAt(t *testing.T) {
	tests := []struct {
		username string
		handle   string
	}{
		{username: "jane", handle: "jane"},
		{username: "@jane", handle: "jane"},
		{username: "@@jane", handle: "@jane"},
		{username: "ja@ne", handle: "ja@ne"},
		{username: " @jane ", handle: "jane"},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			source := &stubSource{body: rssDocument()}
			_, err := feeds.NewIngester(source).Articles(context.Background(), tt.username)

			require.NoError(t, err)
			assert.Equal(t, []string{tt.handle}, source.handles)
		})
	}
}

func TestIngesterWrapsUpstreamFailure(t *testing.T) {
	cause := &feeds.HTTPError{StatusCode: 503, URL: "https://medium.com/feed/@jane"}
	source := &stubSource{err: cause}

	articles, err := feeds.NewIngester(source).Articles(context.Background(), "jane")

	assert.Nil(t, articles)
	var upstream *feeds.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "jane", upstream.Handle)
	assert.ErrorIs(t, err, cause)
}

func TestIngesterEmptyResultIsNotAnError(t *testing.T) {
	source := &stubSource{body: rssDocument()}

	articles, err := feeds.NewIngester(source).Articles(context.Background(), "jane")

	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestIngesterParsesFeed(t *testing.T) {
	source := &stubSource{body: rssDocument(validItem(1), validItem(2))}

	articles, err := feeds.NewIngester(source).Articles(context.Background(), "@jane")

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Post 1", articles[0].Title)
	assert.Equal(t, "Jane Doe", articles[1].Author)
}

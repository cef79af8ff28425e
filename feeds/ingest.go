package feeds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"folio/models"

	log "github.com/sirupsen/logrus"
)

// ErrUsernameRequired is returned when no handle was supplied
var ErrUsernameRequired = errors.New("username is required")

// UpstreamError wraps any failure to retrieve the feed from its host
type UpstreamError struct {
	Handle string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream feed for %q: %v", e.Handle, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// FeedSource returns the raw feed text for a handle
type FeedSource interface {
	Fetch(ctx context.Context, handle string) (string, error)
}

// Ingester validates a handle, fetches its feed and parses it into articles
type Ingester struct {
	source FeedSource
}

func NewIngester(source FeedSource) *Ingester {
	return &Ingester{source: source}
}

// CleanHandle trims surrounding whitespace and a single leading "@" from a handle
func CleanHandle(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}

// Articles returns up to MaxArticles articles for username. The returned slice is never
// nil on success, an empty one means the feed had no valid items.
func (i *Ingester) Articles(ctx context.Context, username string) ([]models.Article, error) {
	handle := CleanHandle(username)
	if handle == "" {
		return nil, ErrUsernameRequired
	}

	raw, err := i.source.Fetch(ctx, handle)
	if err != nil {
		return nil, &UpstreamError{Handle: handle, Err: err}
	}

	articles := Parse(raw)

	log.WithFields(log.Fields{
		"handle":   handle,
		"articles": len(articles),
	}).Info("Ingested feed")

	return articles, nil
}

package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultFeedURLTemplate locates a Medium author's RSS feed by handle
	DefaultFeedURLTemplate = "https://medium.com/feed/@%s"

	// ClientIdentifier is sent as the User-Agent, Medium rejects requests without a browser-like one
	ClientIdentifier = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// HTTPError represents a non-success response from the feed host
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Fetcher retrieves the raw feed text for a handle
type Fetcher struct {
	client      *http.Client
	urlTemplate string
}

// NewFetcher creates a fetcher for the given URL template. The template must contain a
// single %s verb for the handle. An empty template falls back to DefaultFeedURLTemplate.
func NewFetcher(client *http.Client, urlTemplate string) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if urlTemplate == "" {
		urlTemplate = DefaultFeedURLTemplate
	}
	return &Fetcher{client: client, urlTemplate: urlTemplate}
}

// FeedURL returns the feed address for a cleaned handle
func (f *Fetcher) FeedURL(handle string) string {
	return fmt.Sprintf(f.urlTemplate, handle)
}

// Fetch issues exactly one GET for the handle's feed and returns the body as text
func (f *Fetcher) Fetch(ctx context.Context, handle string) (string, error) {
	feedURL := f.FeedURL(handle)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", feedURL, err)
	}
	req.Header.Set("User-Agent", ClientIdentifier)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"url":     feedURL,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("Fetched feed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{StatusCode: resp.StatusCode, URL: feedURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	return string(body), nil
}

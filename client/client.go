package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"folio/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL points at a locally running `folio serve`
const DefaultBaseURL = "http://localhost:3000"

// APIError is a non-success answer from the articles endpoint. Message carries the
// endpoint's error text, suitable for showing to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("articles endpoint returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the article ingestion endpoint
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// Articles fetches the normalized article list for username
func (c *Client) Articles(ctx context.Context, username string) ([]models.Article, error) {
	endpoint := c.baseURL + "/api/medium?" + url.Values{"username": {username}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling articles endpoint: %w", err)
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"username":  username,
		"status":    resp.StatusCode,
		"requestId": requestID,
	}).Debug("Articles endpoint responded")

	if resp.StatusCode != http.StatusOK {
		var body models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	var body models.ArticlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding articles: %w", err)
	}

	if body.Articles == nil {
		body.Articles = []models.Article{}
	}
	return body.Articles, nil
}

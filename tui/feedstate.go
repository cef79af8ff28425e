package tui

import (
	"context"
	"errors"

	"folio/client"
	"folio/models"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

// genericFetchError is shown when the failure carries no user-facing message
const genericFetchError = "Failed to fetch articles. Please check the username and try again."

// Phase is the lifecycle of an article fetch
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return "idle"
	}
}

// ArticleFetcher resolves a username into articles
type ArticleFetcher interface {
	Articles(ctx context.Context, username string) ([]models.Article, error)
}

// ArticlesLoadedMsg is sent when a fetch started by Trigger resolves
type ArticlesLoadedMsg struct {
	Username string
	Articles []models.Article
	Err      error
}

// FeedState owns the article list and its fetch lifecycle
type FeedState struct {
	phase    Phase
	articles []models.Article
	message  string
	username string

	fetcher  ArticleFetcher
	carousel *Carousel
}

func NewFeedState(fetcher ArticleFetcher, carousel *Carousel) *FeedState {
	return &FeedState{
		fetcher:  fetcher,
		carousel: carousel,
		articles: []models.Article{},
	}
}

func (f *FeedState) Phase() Phase {
	return f.phase
}

// Articles returns the current result, empty unless Phase is Success
func (f *FeedState) Articles() []models.Article {
	return f.articles
}

// Message is the error text when Phase is Failed
func (f *FeedState) Message() string {
	return f.message
}

// Username is the handle of the most recent trigger
func (f *FeedState) Username() string {
	return f.username
}

// Trigger moves to Loading and returns the command performing the fetch. Earlier
// fetches are not cancelled, whichever resolves last wins.
func (f *FeedState) Trigger(username string) tea.Cmd {
	f.phase = Loading
	f.username = username

	fetcher := f.fetcher
	return func() tea.Msg {
		articles, err := fetcher.Articles(context.Background(), username)
		return ArticlesLoadedMsg{Username: username, Articles: articles, Err: err}
	}
}

// Resolve applies a finished fetch
func (f *FeedState) Resolve(msg ArticlesLoadedMsg) {
	if msg.Err != nil {
		log.WithFields(log.Fields{
			"username": msg.Username,
			"error":    msg.Err,
		}).Warn("Could not load articles")

		f.phase = Failed
		f.message = errorMessage(msg.Err)
		f.articles = []models.Article{}
		f.carousel.Reset(0)
		return
	}

	articles := msg.Articles
	if articles == nil {
		articles = []models.Article{}
	}

	f.phase = Success
	f.message = ""
	f.articles = articles
	f.carousel.Reset(len(articles))
}

func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericFetchError
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"folio/client"
	"folio/config"
	"folio/feeds"
	"folio/models"

	"github.com/cqroot/prompt"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// ArticleLister is implemented by both the endpoint client and the in-process ingester
type ArticleLister interface {
	Articles(ctx context.Context, username string) ([]models.Article, error)
}

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Print an author's latest articles to the command line",
		Description: `Fetches the latest articles for a Medium handle and prints them.

Returns each article as a JSON object on a single line. Use a tool like jq to process
the output. Asks for the handle when none is given, suggesting the configured default.

By default the articles endpoint is called, use --direct to fetch and parse the
feed in-process instead.

Prints all other log messages to stderr.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Medium handle, with or without a leading @",
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Value:   client.DefaultBaseURL,
				Usage:   "Base URL of a running folio server",
				EnvVars: []string{"FOLIO_ENDPOINT"},
			},
			&cli.BoolFlag{
				Name:  "direct",
				Usage: "Fetch the feed directly instead of calling the endpoint",
			},
			&cli.StringFlag{
				Name:    "feed-url",
				Value:   feeds.DefaultFeedURLTemplate,
				Usage:   "Feed URL template used with --direct",
				EnvVars: []string{"FOLIO_FEED_URL"},
			},
		},
		Action: func(ctx *cli.Context) error {
			// Keep stdout for articles only
			log.SetOutput(os.Stderr)

			username := ctx.String("username")
			if username == "" {
				var err error
				username, err = prompt.New().Ask("Handle:").Input(config.DefaultConfig().DefaultHandle)
				if err != nil {
					return err
				}
			}

			var lister ArticleLister
			if ctx.Bool("direct") {
				lister = feeds.NewIngester(feeds.NewFetcher(&http.Client{}, ctx.String("feed-url")))
			} else {
				lister = client.New(ctx.String("endpoint"), &http.Client{})
			}

			articles, err := lister.Articles(ctx.Context, username)
			if err != nil {
				return fmt.Errorf("could not fetch articles for %s: %w", username, err)
			}

			if len(articles) == 0 {
				log.WithFields(log.Fields{
					"username": username,
				}).Info("No articles found")
			}

			for _, article := range articles {
				printStdout(&article)
			}
			return nil
		},
	}
}

func printStdout(article *models.Article) {
	// Print as single JSON string on a single line
	articleJson, err := json.Marshal(article)
	if err == nil {
		fmt.Println(string(articleJson))
	}
}

package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/feeds"
	"folio/server"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the article endpoint",
		Description: `Starts the HTTP server exposing GET /api/medium?username=<handle>.

Every request fetches the author's feed once, no results are cached.
Metrics are exposed on /metrics and a health check on /health.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "hostname",
				Aliases: []string{"n"},
				Value:   "",
				Usage:   "The hostname to listen on, empty for all interfaces",
				EnvVars: []string{"FOLIO_HOSTNAME"},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   3000,
				Usage:   "The port to listen on",
				EnvVars: []string{"FOLIO_PORT"},
			},
			&cli.StringFlag{
				Name:    "feed-url",
				Value:   feeds.DefaultFeedURLTemplate,
				Usage:   "Feed URL template, %s is replaced by the handle",
				EnvVars: []string{"FOLIO_FEED_URL"},
			},
			&cli.StringFlag{
				Name:    "allow-origins",
				Value:   "*",
				Usage:   "Comma separated list of origins allowed by CORS",
				EnvVars: []string{"FOLIO_ALLOW_ORIGINS"},
			},
		},
		Action: func(ctx *cli.Context) error {
			fetcher := feeds.NewFetcher(&http.Client{}, ctx.String("feed-url"))

			app := server.Server(&server.ServerConfig{
				Articles:     feeds.NewIngester(fetcher),
				AllowOrigins: ctx.String("allow-origins"),
			})

			// Graceful shutdown
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-c
				log.Info("Gracefully shutting down...")
				if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
					log.WithFields(log.Fields{
						"error": err,
					}).Error("Error shutting down server")
				}
			}()

			addr := fmt.Sprintf("%s:%d", ctx.String("hostname"), ctx.Int("port"))
			log.WithFields(log.Fields{
				"addr":    addr,
				"feedUrl": ctx.String("feed-url"),
			}).Info("Starting server")

			return app.Listen(addr)
		},
	}
}

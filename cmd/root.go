package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "folio",
		Usage: "Portfolio article feed service and terminal client",
		Description: `Serves a normalized list of an author's latest Medium articles and
		browses them, together with a list of selected projects, in the terminal.

		The serve command exposes GET /api/medium?username=<handle> which fetches
		the author's RSS feed, parses it and returns at most 12 articles.

		Flags can generally be set via environment variables or a .env file, e.g.:

		--port => FOLIO_PORT=3000
		--endpoint => FOLIO_ENDPOINT=http://localhost:3000
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"FOLIO_LOG_LEVEL"},
			},
		},
		Before: func(ctx *cli.Context) error {
			level, err := log.ParseLevel(ctx.String("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			fetchCmd(),
			browseCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

// Execute loads .env and runs the root app with the process arguments
func Execute() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithFields(log.Fields{
			"error": err,
		}).Warn("Could not load .env file")
	}

	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"folio/client"
	"folio/config"
	"folio/models"
	"folio/tui"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func browseCmd() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse projects and articles in the terminal",
		Description: `Opens the portfolio in the terminal.

Shows the configured projects and the latest articles of the default handle,
loaded through the articles endpoint. Navigate with the arrow keys or by dragging
with the mouse, press / to load another handle and t to switch themes.

The theme choice is remembered in the state file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the site configuration file, the bundled one is used when empty",
				EnvVars: []string{"FOLIO_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "Base URL of a running folio server, overrides the config file",
				EnvVars: []string{"FOLIO_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "Handle to load on start, overrides the config file",
			},
			&cli.StringFlag{
				Name:    "state",
				Usage:   "Path to the state file, defaults to <user config dir>/folio/state.toml",
				EnvVars: []string{"FOLIO_STATE"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to this file, logs are discarded when empty",
				EnvVars: []string{"FOLIO_LOG_FILE"},
			},
		},
		Action: func(ctx *cli.Context) error {
			// The terminal belongs to the UI
			log.SetOutput(io.Discard)
			if path := ctx.String("log-file"); path != "" {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("could not open log file: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
			}
			browser.Stdout = io.Discard
			browser.Stderr = io.Discard

			cfg, err := config.LoadConfig(ctx.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if endpoint := ctx.String("endpoint"); endpoint != "" {
				cfg.Endpoint = endpoint
			}
			if username := ctx.String("username"); username != "" {
				cfg.DefaultHandle = username
			}

			statePath := ctx.String("state")
			if statePath == "" {
				statePath, err = config.DefaultStatePath()
				if err != nil {
					return err
				}
			}

			model := tui.New(tui.Options{
				Name:          cfg.Name,
				Tagline:       cfg.Tagline,
				Projects:      cfg.Projects,
				DefaultHandle: cfg.DefaultHandle,
				Fetcher:       client.New(cfg.Endpoint, &http.Client{}),
				Themes:        config.NewStateStore(statePath),
				DetectTheme:   detectTheme,
				OpenURL:       browser.OpenURL,
				CopyText:      clipboard.WriteAll,
			})

			log.WithFields(log.Fields{
				"endpoint": cfg.Endpoint,
				"handle":   cfg.DefaultHandle,
				"projects": len(cfg.Projects),
			}).Info("Starting browser")

			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			return err
		},
	}
}

func detectTheme() (models.Theme, bool) {
	if lipgloss.HasDarkBackground() {
		return models.ThemeDark, true
	}
	return models.ThemeLight, true
}

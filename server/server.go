package server

import (
	"context"
	"errors"
	"time"

	"folio/feeds"
	"folio/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	// ArticlesPath is the route of the article ingestion endpoint
	ArticlesPath = "/api/medium"

	MessageUsernameRequired = "Username is required"
	MessageFetchFailed      = "Failed to fetch articles. Please check the username and try again."
)

// ArticleSource resolves a raw username into articles
type ArticleSource interface {
	Articles(ctx context.Context, username string) ([]models.Article, error)
}

type ServerConfig struct {

	// Resolves usernames into articles
	Articles ArticleSource

	// Comma separated list of origins allowed to call the API
	AllowOrigins string
}

// Returns a fiber.App instance to be used as an HTTP server for the article endpoint
func Server(config *ServerConfig) *fiber.App {

	app := fiber.New(fiber.Config{
		AppName:               "folio",
		DisableStartupMessage: true,
	})

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.WithFields(log.Fields{
			"method":    c.Method(),
			"route":     c.Route().Path,
			"status":    c.Response().StatusCode(),
			"requestId": c.Locals("requestid"),
			"latency":   time.Since(start),
		}).Info("Request")
		return err
	})

	app.Use(requestid.New(requestid.ConfigDefault))
	app.Use(compress.New())

	allowOrigins := config.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get(ArticlesPath, articlesHandler(config.Articles))

	return app
}

func articlesHandler(source ArticleSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Query("username")

		start := time.Now()
		articles, err := source.Articles(c.UserContext(), username)
		articleRequestDuration.Observe(time.Since(start).Seconds())

		if errors.Is(err, feeds.ErrUsernameRequired) {
			articleRequests.WithLabelValues(outcomeValidation).Inc()
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: MessageUsernameRequired})
		}

		if err != nil {
			// The cause stays in our logs, callers only get the generic message
			log.WithFields(log.Fields{
				"username":  username,
				"requestId": c.Locals("requestid"),
				"error":     err,
			}).Error("Error fetching Medium articles")

			articleRequests.WithLabelValues(outcomeUpstream).Inc()
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: MessageFetchFailed})
		}

		if articles == nil {
			articles = []models.Article{}
		}

		if len(articles) == 0 {
			articleRequests.WithLabelValues(outcomeEmpty).Inc()
		} else {
			articleRequests.WithLabelValues(outcomeOK).Inc()
		}
		articlesReturned.Observe(float64(len(articles)))

		return c.Status(fiber.StatusOK).JSON(models.ArticlesResponse{Articles: articles})
	}
}

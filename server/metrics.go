package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	articleRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_article_requests_total",
		Help: "Article endpoint requests by outcome",
	}, []string{"outcome"})

	articleRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_article_request_duration_seconds",
		Help:    "Time spent fetching and parsing an author feed",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // Start at 50ms, double each bucket, 10 buckets
	})

	articlesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_articles_returned",
		Help:    "Number of articles returned per successful request",
		Buckets: prometheus.LinearBuckets(0, 2, 7),
	})
)

const (
	outcomeOK         = "ok"
	outcomeEmpty      = "empty"
	outcomeValidation = "validation_error"
	outcomeUpstream   = "upstream_error"
)

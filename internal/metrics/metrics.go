// Package metrics exposes Prometheus collectors for the marketlink
// service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	MatchRequests *prometheus.CounterVec
	MatchScores   prometheus.Histogram
	MarketFetches *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
}

// New creates and registers the collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MatchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketlink",
			Name:      "match_requests_total",
			Help:      "Match requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		MatchScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketlink",
			Name:      "match_score",
			Help:      "Scores of returned matches.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		MarketFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketlink",
			Name:      "market_fetches_total",
			Help:      "Market API fetches by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marketlink",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "marketlink",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	reg.MustRegister(
		m.MatchRequests,
		m.MatchScores,
		m.MarketFetches,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// ObserveMatch records a match operation's outcome and, for hits, the
// winning score.
func (m *Metrics) ObserveMatch(operation string, matched bool, score float64) {
	outcome := "miss"
	if matched {
		outcome = "hit"
		m.MatchScores.Observe(score)
	}
	m.MatchRequests.WithLabelValues(operation, outcome).Inc()
}

// GinMiddleware tracks request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ContentCommands counts workflow commands by name and outcome
	// (ok, invalid, forbidden, not_found, error).
	ContentCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_admin_commands_total",
		Help: "Total number of content workflow commands by outcome",
	}, []string{"command", "outcome"})

	// RequestDuration records request latency by route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_admin_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// RateLimited counts requests rejected by a rate limiter.
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_admin_rate_limited_total",
		Help: "Total number of rate limited requests",
	}, []string{"route"})
)

// RecordCommand counts one run of a content command.
func RecordCommand(command, outcome string) {
	ContentCommands.WithLabelValues(command, outcome).Inc()
}

// MetricsMiddleware observes the latency of every matched route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

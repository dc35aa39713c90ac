package log

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "swesearch",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of handled HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swesearch",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Handled HTTP requests.",
	}, []string{"method", "path", "code"})
)

type LoggerConfig struct {
	Name          string
	DoMetrics     bool
	LogErrorsOnly bool
}

// NewFiberLogger logs every request through slog and, when enabled,
// records per-route prometheus metrics. Routes are labeled by the
// registered path, not the raw URL, to keep label cardinality bounded.
func NewFiberLogger(conf *LoggerConfig) fiber.Handler {
	if conf == nil {
		conf = &LoggerConfig{Name: "http"}
	}

	logger := slog.Default().With(slog.String("logger", conf.Name))

	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()

		if conf.DoMetrics {
			route := c.Route().Path

			requestDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())
			requestCount.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		}

		l := logger.With(
			slog.String("client", c.IP()+":"+c.Port()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Int64("ms", elapsed.Milliseconds()),
		)

		if chainErr != nil {
			l = l.With(slog.Any("error", chainErr))
		}

		switch {
		case status >= 400 || chainErr != nil:
			l.Warn("request failed")
		case conf.LogErrorsOnly:
			l.Debug("request")
		default:
			l.Info("request")
		}

		return chainErr
	}
}

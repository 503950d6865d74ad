// Package metrics has prometheus metric variables/functions.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mjl-/mailparse/mlog"
)

var pkglog = mlog.New("metrics", nil)

var (
	metricHTTPServer = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailparse_httpserver_request_duration_seconds",
			Help:    "HTTP webhook requests.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.100, 0.5, 1, 5, 10},
		},
		[]string{
			"handler",
			"method",
			"code",
			"result",
		},
	)
)

// HTTPServerObserve tracks the result of an HTTP request in a metric, and
// logs the result.
func HTTPServerObserve(ctx context.Context, handler, method string, statusCode int, err error, start time.Time) {
	log := pkglog.WithContext(ctx)
	var result string
	switch {
	case err == nil:
		switch statusCode / 100 {
		case 2:
			result = "ok"
		case 4:
			result = "usererror"
		case 5:
			result = "servererror"
		default:
			result = "other"
		}
	case errors.Is(err, context.DeadlineExceeded):
		result = "timeout"
	case errors.Is(err, context.Canceled):
		result = "canceled"
	default:
		result = "error"
	}
	metricHTTPServer.WithLabelValues(handler, method, fmt.Sprintf("%d", statusCode), result).Observe(float64(time.Since(start)) / float64(time.Second))
	log.Debugx("httpserver result", err,
		slog.String("handler", handler),
		slog.String("method", method),
		slog.Int("code", statusCode),
		slog.Duration("duration", time.Since(start)))
}

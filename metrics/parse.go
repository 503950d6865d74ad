package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricParse = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailparse_parse_duration_seconds",
			Help:    "Duration of parsing a message, by result.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{
			"result", // ok, parterror
		},
	)
	metricParts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailparse_parts_total",
			Help: "Leaf parts found in parsed messages, by classification.",
		},
		[]string{
			"kind", // content, attachment, embed
		},
	)
	metricDecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailparse_decode_errors_total",
			Help: "Parts whose content-transfer-encoding could not be decoded.",
		},
		[]string{
			"encoding", // base64, quoted-printable
		},
	)
	metricCharset = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailparse_charset_convert_total",
			Help: "Charset conversions, by how the source charset was determined.",
		},
		[]string{
			"result", // direct, same, utf8, guessed, fallback, unresolved, failed
		},
	)
)

// ParseObserve tracks the duration of parsing a message.
func ParseObserve(result string, start time.Time) {
	metricParse.WithLabelValues(result).Observe(float64(time.Since(start)) / float64(time.Second))
}

func PartInc(kind string) {
	metricParts.WithLabelValues(kind).Inc()
}

func DecodeErrorInc(encoding string) {
	metricDecodeErrors.WithLabelValues(encoding).Inc()
}

func CharsetConvertInc(result string) {
	metricCharset.WithLabelValues(result).Inc()
}

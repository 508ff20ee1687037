package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess         = "success"
	StatusValidationError = "validation_error"
	StatusUpstreamError   = "upstream_error"
	StatusStorageError    = "storage_error"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stickerme",
			Subsystem: "generator",
			Name:      "generations_total",
			Help:      "Image generation attempts by outcome",
		},
		[]string{"status"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stickerme",
			Subsystem: "generator",
			Name:      "generation_duration_seconds",
			Help:      "Time from validated request to persisted image",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
	)

	GeneratedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stickerme",
			Subsystem: "generator",
			Name:      "generated_bytes_total",
			Help:      "Total bytes of generated images written to disk",
		},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stickerme",
			Subsystem: "stability_api",
			Name:      "request_duration_seconds",
			Help:      "Text-to-image request duration by HTTP status code",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"code"},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stickerme",
			Subsystem: "discord",
			Name:      "interactions_total",
			Help:      "Handled Discord interactions by command or component",
		},
		[]string{"name"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Package metrics implements the MetricsRecorder port on a dedicated
// prometheus registry, exposed in text format at the /metrics endpoint.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder accumulates serving metrics. Prometheus counters use atomic
// accumulation, so concurrent requests increment safely.
type Recorder struct {
	registry *prometheus.Registry

	requestCount     *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	predictionCount  prometheus.Counter
	predictionErrors prometheus.Counter
	modelInfo        *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.requestCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_request_total",
		Help: "Total API requests",
	}, []string{"method", "endpoint", "status"})

	r.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "Request duration in seconds",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	}, []string{"endpoint"})

	r.predictionCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "api_prediction_total",
		Help: "Total predictions served",
	})

	r.predictionErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "api_prediction_errors_total",
		Help: "Total prediction errors",
	})

	r.modelInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "model_info",
		Help: "Model version information",
	}, []string{"version"})

	r.registry.MustRegister(r.requestCount, r.requestLatency, r.predictionCount, r.predictionErrors, r.modelInfo)
	return r
}

func (r *Recorder) RecordRequest(method, endpoint string, status int, duration time.Duration) {
	r.requestCount.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	r.requestLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (r *Recorder) RecordPrediction() {
	r.predictionCount.Inc()
}

func (r *Recorder) RecordPredictionError() {
	r.predictionErrors.Inc()
}

func (r *Recorder) SetModelInfo(version string) {
	r.modelInfo.WithLabelValues(version).Set(1)
}

// Handler serves the text exposition of the recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

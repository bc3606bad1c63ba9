package http

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-meddevice-intelligence-ui/internal/connectors/prediction"
)

var (
	metricsRegistry = prometheus.NewRegistry()
	metricsFactory  = promauto.With(metricsRegistry)

	httpRequestsTotal = metricsFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "meddevice_ui_http_requests_total",
		Help: "Total HTTP requests handled by this app.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = metricsFactory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meddevice_ui_http_request_duration_seconds",
		Help:    "Duration of HTTP requests handled by this app.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	httpInFlight = metricsFactory.NewGauge(prometheus.GaugeOpts{
		Name: "meddevice_ui_http_in_flight_requests",
		Help: "In-flight HTTP requests currently served by this app.",
	})

	upstreamCallsTotal = metricsFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "meddevice_ui_upstream_calls_total",
		Help: "Calls to the prediction API by endpoint, mode and outcome.",
	}, []string{"endpoint", "mode", "outcome"})

	upstreamCallDuration = metricsFactory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meddevice_ui_upstream_call_duration_seconds",
		Help:    "Latency of calls to the prediction API, mock delay included.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 2.5, 5, 10},
	}, []string{"endpoint", "mode"})

	predictionsTotal = metricsFactory.NewCounterVec(prometheus.CounterOpts{
		Name: "meddevice_ui_predictions_total",
		Help: "Prediction outcomes by endpoint and label. Recorded only with analytics enabled.",
	}, []string{"endpoint", "label"})
)

func init() {
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func metricsHandler() http.Handler {
	return promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})
}

// Endpoint names used as metric labels.
const (
	endpointPreMulticlass = "pre_multiclass"
	endpointPostBinary    = "post_binary"
	endpointStatusSummary = "status_summary"
)

func upstreamOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	if _, ok := prediction.IsRequestFailed(err); ok {
		return "request_failed"
	}
	switch {
	case errors.Is(err, prediction.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "error"
}

func recordUpstreamCall(endpoint, mode string, durationSeconds float64, err error) {
	upstreamCallsTotal.WithLabelValues(endpoint, mode, upstreamOutcome(err)).Inc()
	upstreamCallDuration.WithLabelValues(endpoint, mode).Observe(durationSeconds)
}

func recordPrediction(enabled bool, endpoint, label string) {
	if !enabled || label == "" {
		return
	}
	predictionsTotal.WithLabelValues(endpoint, label).Inc()
}

// appMetricsSummaryHandler condenses the upstream counters into JSON for the dashboard footer.
func appMetricsSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		type upstreamRow struct {
			Endpoint string  `json:"endpoint"`
			Mode     string  `json:"mode"`
			Outcome  string  `json:"outcome"`
			Count    float64 `json:"count"`
		}

		families, err := metricsRegistry.Gather()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to gather metrics"})
			return
		}

		rows := make([]upstreamRow, 0)
		httpTotal := 0.0
		predictions := map[string]float64{}
		for _, mf := range families {
			switch mf.GetName() {
			case "meddevice_ui_upstream_calls_total":
				for _, m := range mf.GetMetric() {
					row := upstreamRow{Count: m.GetCounter().GetValue()}
					for _, lp := range m.GetLabel() {
						switch lp.GetName() {
						case "endpoint":
							row.Endpoint = lp.GetValue()
						case "mode":
							row.Mode = lp.GetValue()
						case "outcome":
							row.Outcome = lp.GetValue()
						}
					}
					rows = append(rows, row)
				}
			case "meddevice_ui_http_requests_total":
				for _, m := range mf.GetMetric() {
					httpTotal += m.GetCounter().GetValue()
				}
			case "meddevice_ui_predictions_total":
				for _, m := range mf.GetMetric() {
					key := make([]string, 0, 2)
					for _, lp := range m.GetLabel() {
						key = append(key, lp.GetValue())
					}
					predictions[strings.Join(key, "/")] += m.GetCounter().GetValue()
				}
			}
		}

		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Endpoint != rows[j].Endpoint {
				return rows[i].Endpoint < rows[j].Endpoint
			}
			if rows[i].Mode != rows[j].Mode {
				return rows[i].Mode < rows[j].Mode
			}
			return rows[i].Outcome < rows[j].Outcome
		})

		writeJSON(w, http.StatusOK, map[string]any{
			"meta": map[string]any{
				"generated_at": time.Now().UTC(),
			},
			"data": map[string]any{
				"http_requests_total": httpTotal,
				"upstream_calls":      rows,
				"predictions":         predictions,
			},
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func observabilityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := normalizeMetricPath(r.URL.Path)
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// normalizeMetricPath folds unknown paths into one series to bound label cardinality.
func normalizeMetricPath(path string) string {
	switch path {
	case "/", "/metrics", "/health", "/ready", "/favicon.ico",
		"/ui/pre-multiclass", "/ui/post-binary", "/ui/status-summary",
		"/api/v1/predict/pre-multiclass", "/api/v1/predict/post-binary", "/api/v1/status-summary",
		"/api/v1/settings/app", "/api/v1/status/upstream", "/api/v1/metrics/app":
		return path
	}
	return "other"
}

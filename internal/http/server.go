package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"go-meddevice-intelligence-ui/internal/config"
	"go-meddevice-intelligence-ui/internal/connectors/prediction"
)

// Predictor is the prediction API as seen by the handlers.
type Predictor interface {
	Mode() string
	Endpoints() map[string]string
	PredictPreMulticlass(ctx context.Context, req prediction.PreMulticlassRequest) (*prediction.PreMulticlassResponse, error)
	PredictPostBinary(ctx context.Context, req prediction.PostBinaryRequest) (*prediction.PostBinaryResponse, error)
	StatusSummary(ctx context.Context, req prediction.StatusSummaryRequest) (*prediction.StatusSummaryResponse, error)
}

// Server wraps an HTTP server and route handlers.
type Server struct {
	httpServer *nethttp.Server
}

// NewServer creates a configured HTTP server with the dashboard and v1 endpoints.
func NewServer(cfg config.Config, predictor Predictor) *Server {
	return &Server{
		httpServer: &nethttp.Server{
			Addr:         cfg.ListenAddr,
			Handler:      newHandler(cfg, predictor),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

func newHandler(cfg config.Config, predictor Predictor) nethttp.Handler {
	ui := newDashboard(cfg, predictor)

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/", ui.pageHandler)
	mux.HandleFunc("/favicon.ico", faviconHandler)
	mux.HandleFunc("/ui/pre-multiclass", ui.preMulticlassSubmitHandler)
	mux.HandleFunc("/ui/post-binary", ui.postBinarySubmitHandler)
	mux.HandleFunc("/ui/status-summary", ui.statusSummarySubmitHandler)
	mux.Handle("/metrics", metricsHandler())
	mux.HandleFunc("/api/v1/metrics/app", appMetricsSummaryHandler())
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", readyHandler)
	mux.HandleFunc("/api/v1/predict/pre-multiclass", preMulticlassHandler(cfg, predictor))
	mux.HandleFunc("/api/v1/predict/post-binary", postBinaryHandler(cfg, predictor))
	mux.HandleFunc("/api/v1/status-summary", statusSummaryHandler(cfg, predictor))
	mux.HandleFunc("/api/v1/settings/app", appSettingsHandler(cfg))
	mux.HandleFunc("/api/v1/status/upstream", upstreamStatusHandler(predictor))

	return loggingMiddleware(observabilityMiddleware(mux))
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

func readyHandler(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status": "ready",
	})
}

const requestIDHeader = "X-Request-Id"

func loggingMiddleware(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		start := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: nethttp.StatusOK}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}

func writeJSON(w nethttp.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

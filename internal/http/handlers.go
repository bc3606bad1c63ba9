package http

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"go-meddevice-intelligence-ui/internal/config"
	"go-meddevice-intelligence-ui/internal/connectors/prediction"
	"go-meddevice-intelligence-ui/internal/dashboard"
)

const maxRequestBody = 1 << 20

func preMulticlassHandler(cfg config.Config, predictor Predictor) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if !requirePost(w, r) {
			return
		}

		var req prediction.PreMulticlassRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		req.RiskClass = dashboard.ResolveRiskClass(string(req.RiskClass))
		req.Country = strings.ToUpper(strings.TrimSpace(req.Country))
		if !validRequest(w, req) {
			return
		}

		var resp *prediction.PreMulticlassResponse
		err := callUpstream(r.Context(), endpointPreMulticlass, predictor.Mode(), func(ctx context.Context) error {
			var err error
			resp, err = predictor.PredictPreMulticlass(ctx, req)
			return err
		})
		if err != nil {
			writeUpstreamError(w, err)
			return
		}

		recordPrediction(cfg.Features.EnableAnalytics, endpointPreMulticlass, string(resp.PredClass))
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"data": resp,
			"view": dashboard.NewPreMulticlassView(*resp),
		})
	}
}

func postBinaryHandler(cfg config.Config, predictor Predictor) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if !requirePost(w, r) {
			return
		}

		var req prediction.PostBinaryRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if !validRequest(w, req) {
			return
		}

		var resp *prediction.PostBinaryResponse
		err := callUpstream(r.Context(), endpointPostBinary, predictor.Mode(), func(ctx context.Context) error {
			var err error
			resp, err = predictor.PredictPostBinary(ctx, req)
			return err
		})
		if err != nil {
			writeUpstreamError(w, err)
			return
		}

		view := dashboard.NewPostBinaryView(*resp)
		recordPrediction(cfg.Features.EnableAnalytics, endpointPostBinary, view.Label)
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"data": resp,
			"view": view,
		})
	}
}

// statusSummaryHandler answers 200 for domain errors such as an unknown
// device; the error travels in both data.error and view.error.
func statusSummaryHandler(cfg config.Config, predictor Predictor) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if !requirePost(w, r) {
			return
		}

		var req prediction.StatusSummaryRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		if !validRequest(w, req) {
			return
		}

		var resp *prediction.StatusSummaryResponse
		err := callUpstream(r.Context(), endpointStatusSummary, predictor.Mode(), func(ctx context.Context) error {
			var err error
			resp, err = predictor.StatusSummary(ctx, req)
			return err
		})
		if err != nil {
			writeUpstreamError(w, err)
			return
		}

		recordPrediction(cfg.Features.EnableAnalytics, endpointStatusSummary, statusSummaryLabel(resp))
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"data": resp,
			"view": dashboard.NewStatusSummaryView(*resp),
		})
	}
}

func statusSummaryLabel(resp *prediction.StatusSummaryResponse) string {
	switch {
	case !resp.Failed():
		return "found"
	case resp.Error == prediction.ErrDeviceNotFound:
		return "device_not_found"
	}
	return "error"
}

// callUpstream times one prediction call and records its outcome.
func callUpstream(ctx context.Context, endpoint, mode string, call func(context.Context) error) error {
	start := time.Now()
	err := call(ctx)
	recordUpstreamCall(endpoint, mode, time.Since(start).Seconds(), err)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"endpoint": endpoint,
			"mode":     mode,
		}).Warn("prediction call failed")
	}
	return err
}

func requirePost(w nethttp.ResponseWriter, r *nethttp.Request) bool {
	if r.Method == nethttp.MethodPost {
		return true
	}
	w.Header().Set("Allow", nethttp.MethodPost)
	writeJSON(w, nethttp.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
	return false
}

func decodeRequest(w nethttp.ResponseWriter, r *nethttp.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, nethttp.StatusBadRequest, map[string]any{
			"error": "invalid JSON payload: " + err.Error(),
		})
		return false
	}
	return true
}

func validRequest(w nethttp.ResponseWriter, req any) bool {
	err := prediction.ValidateRequest(req)
	if err == nil {
		return true
	}
	writeJSON(w, nethttp.StatusBadRequest, map[string]any{
		"error":  "invalid request",
		"fields": prediction.FieldErrors(err),
	})
	return false
}

func writeUpstreamError(w nethttp.ResponseWriter, err error) {
	code := nethttp.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) {
		code = nethttp.StatusGatewayTimeout
	}
	payload := map[string]any{"error": err.Error()}
	if rf, ok := prediction.IsRequestFailed(err); ok {
		payload["error"] = rf.Error()
		payload["upstream_status"] = rf.StatusCode
	}
	writeJSON(w, code, payload)
}

package http

import (
	nethttp "net/http"
	"time"
)

func upstreamStatusHandler(predictor Predictor) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"generated_at": time.Now().UTC(),
			"data": map[string]any{
				"mode":      predictor.Mode(),
				"endpoints": predictor.Endpoints(),
			},
		})
	}
}

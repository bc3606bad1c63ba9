package http

import (
	nethttp "net/http"

	"go-meddevice-intelligence-ui/internal/config"
)

// appSettingsHandler exposes the resolved non-secret settings.
func appSettingsHandler(cfg config.Config) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"data": map[string]any{
				"app": map[string]any{
					"name":        cfg.App.Name,
					"version":     cfg.App.Version,
					"description": cfg.App.Description,
				},
				"api": map[string]any{
					"base_url":        cfg.API.BaseURL,
					"version":         cfg.API.Version,
					"credentials_set": cfg.API.Key != "" || cfg.API.Secret != "",
				},
				"features": map[string]any{
					"enable_mock_data":  cfg.Features.EnableMockData,
					"enable_debug_mode": cfg.Features.EnableDebugMode,
					"enable_analytics":  cfg.Features.EnableAnalytics,
				},
				"ui": map[string]any{
					"default_theme":               cfg.UI.DefaultTheme,
					"enable_dark_mode":            cfg.UI.EnableDarkMode,
					"chart_animation_duration_ms": cfg.UI.ChartAnimationDuration.Milliseconds(),
				},
				"cache": map[string]any{
					"duration_ms":         cfg.Cache.Duration.Milliseconds(),
					"enable_offline_mode": cfg.Cache.EnableOfflineMode,
				},
			},
		})
	}
}

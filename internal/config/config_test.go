package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_CONFIG_FILE", "APP_SECRETS_FILE", "CREDENTIALS_DIRECTORY",
	"APP_LISTEN_ADDR", "APP_API_BASE_URL", "APP_API_VERSION",
	"APP_PRE_MULTICLASS_ENDPOINT", "APP_POST_BINARY_ENDPOINT", "APP_STATUS_SUMMARY_ENDPOINT",
	"APP_API_KEY", "APP_API_SECRET", "APP_NAME", "APP_VERSION", "APP_DESCRIPTION",
	"APP_ENABLE_MOCK_DATA", "APP_ENABLE_DEBUG_MODE", "APP_ENABLE_ANALYTICS",
	"APP_DEFAULT_THEME", "APP_ENABLE_DARK_MODE", "APP_CHART_ANIMATION_DURATION_MS",
	"APP_CACHE_DURATION_MS", "APP_ENABLE_OFFLINE_MODE",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "https://api.meddevice-intelligence.com", cfg.API.BaseURL)
	assert.Equal(t, "v1", cfg.API.Version)
	assert.Equal(t, "/api/predict/pre-multiclass", cfg.API.Endpoints.PreMulticlass)
	assert.Equal(t, "/api/predict/post-binary", cfg.API.Endpoints.PostBinary)
	assert.Equal(t, "/api/status-summary", cfg.API.Endpoints.StatusSummary)
	assert.Empty(t, cfg.API.Key)
	assert.Empty(t, cfg.API.Secret)
	assert.Equal(t, "MedDevice Intelligence", cfg.App.Name)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "AI-Powered Medical Device Safety Analytics", cfg.App.Description)
	assert.False(t, cfg.Features.EnableMockData)
	assert.False(t, cfg.Features.EnableDebugMode)
	assert.False(t, cfg.Features.EnableAnalytics)
	assert.Equal(t, "light", cfg.UI.DefaultTheme)
	assert.False(t, cfg.UI.EnableDarkMode)
	assert.Equal(t, time.Second, cfg.UI.ChartAnimationDuration)
	assert.Equal(t, 300*time.Second, cfg.Cache.Duration)
	assert.False(t, cfg.Cache.EnableOfflineMode)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_API_BASE_URL", "http://localhost:9000/")
	t.Setenv("APP_API_VERSION", "v2")
	t.Setenv("APP_STATUS_SUMMARY_ENDPOINT", "/api/summary")
	t.Setenv("APP_ENABLE_MOCK_DATA", "true")
	t.Setenv("APP_ENABLE_DARK_MODE", "1")
	t.Setenv("APP_DEFAULT_THEME", "dark")
	t.Setenv("APP_CHART_ANIMATION_DURATION_MS", "250")
	t.Setenv("APP_CACHE_DURATION_MS", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
	assert.Equal(t, "v2", cfg.API.Version)
	assert.Equal(t, "http://localhost:9000/v2/api/summary", cfg.APIURL(cfg.API.Endpoints.StatusSummary))
	assert.True(t, cfg.Features.EnableMockData)
	assert.True(t, cfg.DarkTheme())
	assert.Equal(t, 250*time.Millisecond, cfg.UI.ChartAnimationDuration)
	assert.Equal(t, 300*time.Second, cfg.Cache.Duration)
}

func TestFromEnv_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nAPP_NAME=\"Device Lab\"\nAPP_API_KEY=from-file\n"), 0o600))
	t.Setenv("APP_CONFIG_FILE", path)
	t.Cleanup(func() {
		_ = os.Unsetenv("APP_NAME")
		_ = os.Unsetenv("APP_API_KEY")
	})

	cfg := FromEnv()

	assert.Equal(t, "Device Lab", cfg.App.Name)
	assert.Equal(t, "from-file", cfg.API.Key)
}

func TestAPIURL(t *testing.T) {
	cfg := Config{API: APIConfig{BaseURL: DefaultBaseURL, Version: DefaultVersion}}

	assert.Equal(t, "https://api.meddevice-intelligence.com/v1/api/predict/pre-multiclass", cfg.APIURL(DefaultPreMulticlassEndpoint))
	assert.Equal(t, "https://api.meddevice-intelligence.com/v1/api/status-summary", cfg.APIURL("api/status-summary"))
}

func TestAPIHeaders(t *testing.T) {
	cfg := Config{}
	h := cfg.APIHeaders()
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Empty(t, h.Get("X-API-Key"))
	assert.Empty(t, h.Get("X-API-Secret"))

	cfg.API.Key = "key"
	cfg.API.Secret = "secret"
	h = cfg.APIHeaders()
	assert.Equal(t, "key", h.Get("X-API-Key"))
	assert.Equal(t, "secret", h.Get("X-API-Secret"))
}

package config

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the dashboard service.
// It is resolved once at startup and passed by value afterwards.
type Config struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogFormat       string

	API      APIConfig
	App      AppConfig
	Features FeatureFlags
	UI       UIConfig
	Cache    CacheConfig
}

// APIConfig describes the remote prediction/analytics API.
type APIConfig struct {
	BaseURL   string
	Version   string
	Endpoints Endpoints
	Key       string
	Secret    string
}

// Endpoints are versionless paths appended to BaseURL/Version.
type Endpoints struct {
	PreMulticlass string
	PostBinary    string
	StatusSummary string
}

type AppConfig struct {
	Name        string
	Version     string
	Description string
}

type FeatureFlags struct {
	EnableMockData  bool
	EnableDebugMode bool
	EnableAnalytics bool
}

type UIConfig struct {
	DefaultTheme           string
	EnableDarkMode         bool
	ChartAnimationDuration time.Duration
}

// CacheConfig is exposed through the settings endpoint only. Responses are never cached.
type CacheConfig struct {
	Duration          time.Duration
	EnableOfflineMode bool
}

const (
	DefaultBaseURL               = "https://api.meddevice-intelligence.com"
	DefaultVersion               = "v1"
	DefaultPreMulticlassEndpoint = "/api/predict/pre-multiclass"
	DefaultPostBinaryEndpoint    = "/api/predict/post-binary"
	DefaultStatusSummaryEndpoint = "/api/status-summary"
)

// FromEnv loads configuration from environment variables with sensible defaults.
func FromEnv() Config {
	loadConfigDefaultsFromFile()
	loadSecretsDefaultsFromFile()

	return Config{
		ListenAddr:      getEnv("APP_LISTEN_ADDR", ":8080"),
		ReadTimeout:     time.Duration(getEnvInt("APP_READ_TIMEOUT_SEC", 10)) * time.Second,
		WriteTimeout:    time.Duration(getEnvInt("APP_WRITE_TIMEOUT_SEC", 20)) * time.Second,
		ShutdownTimeout: time.Duration(getEnvInt("APP_SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		LogFormat:       getEnv("APP_LOG_FORMAT", "text"),
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("APP_API_BASE_URL", DefaultBaseURL), "/"),
			Version: strings.Trim(getEnv("APP_API_VERSION", DefaultVersion), "/"),
			Endpoints: Endpoints{
				PreMulticlass: getEnv("APP_PRE_MULTICLASS_ENDPOINT", DefaultPreMulticlassEndpoint),
				PostBinary:    getEnv("APP_POST_BINARY_ENDPOINT", DefaultPostBinaryEndpoint),
				StatusSummary: getEnv("APP_STATUS_SUMMARY_ENDPOINT", DefaultStatusSummaryEndpoint),
			},
			Key:    os.Getenv("APP_API_KEY"),
			Secret: os.Getenv("APP_API_SECRET"),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "MedDevice Intelligence"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Description: getEnv("APP_DESCRIPTION", "AI-Powered Medical Device Safety Analytics"),
		},
		Features: FeatureFlags{
			EnableMockData:  getEnvBool("APP_ENABLE_MOCK_DATA", false),
			EnableDebugMode: getEnvBool("APP_ENABLE_DEBUG_MODE", false),
			EnableAnalytics: getEnvBool("APP_ENABLE_ANALYTICS", false),
		},
		UI: UIConfig{
			DefaultTheme:           getEnv("APP_DEFAULT_THEME", "light"),
			EnableDarkMode:         getEnvBool("APP_ENABLE_DARK_MODE", false),
			ChartAnimationDuration: getEnvDurationMS("APP_CHART_ANIMATION_DURATION_MS", 1000),
		},
		Cache: CacheConfig{
			Duration:          getEnvDurationMS("APP_CACHE_DURATION_MS", 300000),
			EnableOfflineMode: getEnvBool("APP_ENABLE_OFFLINE_MODE", false),
		},
	}
}

// APIURL builds the full upstream URL for a versionless endpoint path.
func (c Config) APIURL(endpoint string) string {
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.API.BaseURL + "/" + c.API.Version + endpoint
}

// APIHeaders returns the headers sent with every upstream call.
func (c Config) APIHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if c.API.Key != "" {
		h.Set("X-API-Key", c.API.Key)
	}
	if c.API.Secret != "" {
		h.Set("X-API-Secret", c.API.Secret)
	}
	return h
}

// DarkTheme reports whether pages should render with the dark palette.
func (c Config) DarkTheme() bool {
	return c.UI.EnableDarkMode && strings.EqualFold(c.UI.DefaultTheme, "dark")
}

func loadConfigDefaultsFromFile() {
	candidates := make([]string, 0, 3)
	if explicit := strings.TrimSpace(os.Getenv("APP_CONFIG_FILE")); explicit != "" {
		candidates = append(candidates, explicit)
	}
	candidates = append(candidates, "./meddevice-ui.env", "/etc/meddevice-ui/config.env")

	for _, candidate := range candidates {
		if err := godotenv.Load(absPath(candidate)); err == nil {
			return
		}
	}
}

func loadSecretsDefaultsFromFile() {
	candidates := make([]string, 0, 3)
	if explicit := strings.TrimSpace(os.Getenv("APP_SECRETS_FILE")); explicit != "" {
		candidates = append(candidates, explicit)
	}
	if credDir := strings.TrimSpace(os.Getenv("CREDENTIALS_DIRECTORY")); credDir != "" {
		credName := strings.TrimSpace(os.Getenv("APP_SECRETS_CREDENTIAL_NAME"))
		if credName == "" {
			credName = "app-secrets"
		}
		candidates = append(candidates, filepath.Join(credDir, credName))
	}
	candidates = append(candidates, "/etc/meddevice-ui/secrets.env")
	for _, candidate := range candidates {
		if err := godotenv.Load(absPath(candidate)); err == nil {
			return
		}
	}
}

func absPath(candidate string) string {
	if filepath.IsAbs(candidate) {
		return candidate
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, candidate)
	}
	return candidate
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvBool(key string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvDurationMS(key string, defMS int) time.Duration {
	ms := getEnvInt(key, defMS)
	if ms < 0 {
		ms = defMS
	}
	return time.Duration(ms) * time.Millisecond
}

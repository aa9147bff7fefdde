package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/hooprun/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	HTTPAddr                      string
	ReadTimeout                   time.Duration
	WriteTimeout                  time.Duration
	DBURL                         string
	DBDisablePreparedBinary       bool
	CacheEnabled                  bool
	CacheTTL                      time.Duration
	CORSAllowedOrigins            []string
	CourtPassBaseURL              string
	CourtPassIntrospectPath       string
	CourtPassTimeout              time.Duration
	CourtPassCircuitEnabled       bool
	CourtPassCircuitFailureCount  int
	CourtPassCircuitOpenTimeout   time.Duration
	CourtPassCircuitHalfOpenMax   int
	PushEnabled                   bool
	PushBaseURL                   string
	PushAPIKey                    string
	PushTimeout                   time.Duration
	PushRetries                   int
	PushCircuitEnabled            bool
	PushCircuitFailureCount       int
	PushCircuitOpenTimeout        time.Duration
	PushCircuitHalfOpenMax        int
	NotificationPoolSize          int
	InternalJobToken              string
	RunCompletionInterval         time.Duration
	UptraceEnabled                bool
	UptraceDSN                    string
	BetterStackEnabled            bool
	BetterStackEndpoint           string
	BetterStackToken              string
	BetterStackTimeout            time.Duration
	BetterStackMinLevel           logging.Level
	PyroscopeEnabled              bool
	PyroscopeServerAddress        string
	PyroscopeAppName              string
	PyroscopeAuthToken            string
	PyroscopeBasicAuthUser        string
	PyroscopeBasicAuthPassword    string
	PyroscopeUploadRate           time.Duration
	PprofEnabled                  bool
	PprofAddr                     string
	LogLevel                      logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	courtPassTimeout, err := time.ParseDuration(getEnv("COURTPASS_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COURTPASS_TIMEOUT: %w", err)
	}
	courtPassCircuitEnabled, err := strconv.ParseBool(getEnv("COURTPASS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COURTPASS_CIRCUIT_ENABLED: %w", err)
	}
	courtPassCircuitFailureCount, err := getEnvAsInt("COURTPASS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse COURTPASS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if courtPassCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("COURTPASS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	courtPassCircuitOpenTimeout, err := time.ParseDuration(getEnv("COURTPASS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COURTPASS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if courtPassCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("COURTPASS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	courtPassCircuitHalfOpenMax, err := getEnvAsInt("COURTPASS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse COURTPASS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if courtPassCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("COURTPASS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pushEnabled, err := strconv.ParseBool(getEnv("PUSH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_ENABLED: %w", err)
	}
	pushBaseURL := strings.TrimSpace(getEnv("PUSH_BASE_URL", ""))
	pushAPIKey := strings.TrimSpace(getEnv("PUSH_API_KEY", ""))
	if pushEnabled {
		if pushBaseURL == "" {
			return Config{}, fmt.Errorf("PUSH_BASE_URL is required when PUSH_ENABLED=true")
		}
		if pushAPIKey == "" {
			return Config{}, fmt.Errorf("PUSH_API_KEY is required when PUSH_ENABLED=true")
		}
	}
	pushTimeout, err := time.ParseDuration(getEnv("PUSH_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_TIMEOUT: %w", err)
	}
	if pushTimeout <= 0 {
		return Config{}, fmt.Errorf("PUSH_TIMEOUT must be > 0")
	}
	pushRetries, err := getEnvAsInt("PUSH_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RETRIES: %w", err)
	}
	if pushRetries < 0 {
		return Config{}, fmt.Errorf("PUSH_RETRIES must be >= 0")
	}
	pushCircuitEnabled, err := strconv.ParseBool(getEnv("PUSH_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_ENABLED: %w", err)
	}
	pushCircuitFailureCount, err := getEnvAsInt("PUSH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if pushCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	pushCircuitOpenTimeout, err := time.ParseDuration(getEnv("PUSH_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if pushCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	pushCircuitHalfOpenMax, err := getEnvAsInt("PUSH_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if pushCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("PUSH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	notificationPoolSize, err := getEnvAsInt("NOTIFICATION_POOL_SIZE", 32)
	if err != nil {
		return Config{}, fmt.Errorf("parse NOTIFICATION_POOL_SIZE: %w", err)
	}
	if notificationPoolSize < 1 {
		return Config{}, fmt.Errorf("NOTIFICATION_POOL_SIZE must be >= 1")
	}

	runCompletionInterval, err := time.ParseDuration(getEnv("RUN_COMPLETION_INTERVAL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RUN_COMPLETION_INTERVAL: %w", err)
	}
	if runCompletionInterval <= 0 {
		return Config{}, fmt.Errorf("RUN_COMPLETION_INTERVAL must be > 0")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "hooprun-api"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		DBURL:                        getEnv("DB_URL", ""),
		DBDisablePreparedBinary:      dbDisablePreparedBinary,
		CacheEnabled:                 cacheEnabled,
		CacheTTL:                     cacheTTL,
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CourtPassBaseURL:             getEnv("COURTPASS_BASE_URL", "http://localhost:8081"),
		CourtPassIntrospectPath:      getEnv("COURTPASS_INTROSPECT_PATH", "/v1/auth/introspect"),
		CourtPassTimeout:             courtPassTimeout,
		CourtPassCircuitEnabled:      courtPassCircuitEnabled,
		CourtPassCircuitFailureCount: courtPassCircuitFailureCount,
		CourtPassCircuitOpenTimeout:  courtPassCircuitOpenTimeout,
		CourtPassCircuitHalfOpenMax:  courtPassCircuitHalfOpenMax,
		PushEnabled:                  pushEnabled,
		PushBaseURL:                  pushBaseURL,
		PushAPIKey:                   pushAPIKey,
		PushTimeout:                  pushTimeout,
		PushRetries:                  pushRetries,
		PushCircuitEnabled:           pushCircuitEnabled,
		PushCircuitFailureCount:      pushCircuitFailureCount,
		PushCircuitOpenTimeout:       pushCircuitOpenTimeout,
		PushCircuitHalfOpenMax:       pushCircuitHalfOpenMax,
		NotificationPoolSize:         notificationPoolSize,
		InternalJobToken:             strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		RunCompletionInterval:        runCompletionInterval,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		BetterStackEnabled:           betterStackEnabled,
		BetterStackEndpoint:          betterStackEndpoint,
		BetterStackToken:             strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:           betterStackTimeout,
		BetterStackMinLevel:          parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		LogLevel:                     parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.AppEnv == EnvProd && cfg.InternalJobToken == "" {
		return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required in prod")
	}

	return cfg, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseUptraceDSNFromOTLPHeaders extracts the DSN from a standard
// OTEL_EXPORTER_OTLP_HEADERS value like "uptrace-dsn=https://...".
func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		key, value, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

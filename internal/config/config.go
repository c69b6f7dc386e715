package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oguzatak/lig-takip/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	CORSAllowedOrigins []string

	StoreDriver             string
	DBURL                   string
	DBDisablePreparedBinary bool

	CacheEnabled bool
	CacheTTL     time.Duration

	SyncForceWindow time.Duration

	TFFBaseURL                string
	TFFTimeout                time.Duration
	TFFMaxRetries             int
	TFFCircuitEnabled         bool
	TFFCircuitFailureCount    int
	TFFCircuitOpenTimeout     time.Duration
	TFFCircuitHalfOpenMaxReq  int
	ASKFPageURL               string
	ASKFTimeout               time.Duration
	ASKFMaxRetries            int
	ASKFCircuitEnabled        bool
	ASKFCircuitFailureCount   int
	ASKFCircuitOpenTimeout    time.Duration
	ASKFCircuitHalfOpenMaxReq int
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	storeDriver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", StoreMemory)))
	switch storeDriver {
	case StoreMemory, StorePostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", storeDriver, StoreMemory, StorePostgres)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storeDriver == StorePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
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

	syncForceWindow, err := time.ParseDuration(getEnv("SYNC_FORCE_WINDOW", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_FORCE_WINDOW: %w", err)
	}
	if syncForceWindow <= 0 {
		return Config{}, fmt.Errorf("SYNC_FORCE_WINDOW must be > 0")
	}

	tff, err := loadSourceConfig("TFF", "https://www.tff.org")
	if err != nil {
		return Config{}, err
	}
	askf, err := loadSourceConfig("ASKF", "https://karabukaskf.com/kategori/9/1-amator")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "lig-takip-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		StoreDriver:             storeDriver,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		SyncForceWindow: syncForceWindow,

		TFFBaseURL:                tff.baseURL,
		TFFTimeout:                tff.timeout,
		TFFMaxRetries:             tff.maxRetries,
		TFFCircuitEnabled:         tff.circuitEnabled,
		TFFCircuitFailureCount:    tff.circuitFailureCount,
		TFFCircuitOpenTimeout:     tff.circuitOpenTimeout,
		TFFCircuitHalfOpenMaxReq:  tff.circuitHalfOpenMaxReq,
		ASKFPageURL:               askf.baseURL,
		ASKFTimeout:               askf.timeout,
		ASKFMaxRetries:            askf.maxRetries,
		ASKFCircuitEnabled:        askf.circuitEnabled,
		ASKFCircuitFailureCount:   askf.circuitFailureCount,
		ASKFCircuitOpenTimeout:    askf.circuitOpenTimeout,
		ASKFCircuitHalfOpenMaxReq: askf.circuitHalfOpenMaxReq,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

type sourceConfig struct {
	baseURL               string
	timeout               time.Duration
	maxRetries            int
	circuitEnabled        bool
	circuitFailureCount   int
	circuitOpenTimeout    time.Duration
	circuitHalfOpenMaxReq int
}

// loadSourceConfig reads the shared env surface of one external source,
// prefixed by the source name (TFF_TIMEOUT, ASKF_MAX_RETRIES, ...).
func loadSourceConfig(prefix, defaultBaseURL string) (sourceConfig, error) {
	baseURLKey := prefix + "_BASE_URL"
	if prefix == "ASKF" {
		baseURLKey = prefix + "_PAGE_URL"
	}

	timeout, err := time.ParseDuration(getEnv(prefix+"_TIMEOUT", "20s"))
	if err != nil {
		return sourceConfig{}, fmt.Errorf("parse %s_TIMEOUT: %w", prefix, err)
	}
	if timeout <= 0 {
		return sourceConfig{}, fmt.Errorf("%s_TIMEOUT must be > 0", prefix)
	}

	maxRetries, err := getEnvAsInt(prefix+"_MAX_RETRIES", 2)
	if err != nil {
		return sourceConfig{}, fmt.Errorf("parse %s_MAX_RETRIES: %w", prefix, err)
	}
	if maxRetries < 0 {
		return sourceConfig{}, fmt.Errorf("%s_MAX_RETRIES must be >= 0", prefix)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return sourceConfig{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	circuitFailureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return sourceConfig{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if circuitFailureCount < 1 {
		return sourceConfig{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return sourceConfig{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if circuitOpenTimeout <= 0 {
		return sourceConfig{}, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return sourceConfig{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if circuitHalfOpenMaxReq < 1 {
		return sourceConfig{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return sourceConfig{
		baseURL:               strings.TrimSpace(getEnv(baseURLKey, defaultBaseURL)),
		timeout:               timeout,
		maxRetries:            maxRetries,
		circuitEnabled:        circuitEnabled,
		circuitFailureCount:   circuitFailureCount,
		circuitOpenTimeout:    circuitOpenTimeout,
		circuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
	}, nil
}

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

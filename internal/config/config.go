package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/draft-assistant/internal/platform/logging"
)

const (
	PlayerSourceSleeper = "sleeper"
	PlayerSourceMemory  = "memory"
)

// Config stores runtime configuration for the draft assistant.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	LogLevel                     logging.Level
	LogFormat                    logging.Format
	PlayerSource                 string
	SleeperBaseURL               string
	SleeperSport                 string
	SleeperTimeout               time.Duration
	SleeperMaxRetries            int
	SleeperRequestsPerSecond     float64
	SleeperCircuitEnabled        bool
	SleeperCircuitFailureCount   int
	SleeperCircuitOpenTimeout    time.Duration
	SleeperCircuitHalfOpenMaxReq int
	CacheEnabled                 bool
	CacheTTL                     time.Duration
	DraftTopN                    int
	DraftDefaultProjection       float64
	DraftDefaultTier             int
	DraftDefaultADP              float64
	UptraceEnabled               bool
	UptraceDSN                   string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormatDefault := string(logging.FormatJSON)
	if appEnv == EnvDev {
		logFormatDefault = string(logging.FormatConsole)
	}

	playerSource, err := parsePlayerSource(getEnv("PLAYER_SOURCE", PlayerSourceSleeper))
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

	sleeperTimeout, err := time.ParseDuration(getEnv("SLEEPER_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TIMEOUT: %w", err)
	}
	if sleeperTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_TIMEOUT must be > 0")
	}
	sleeperMaxRetries, err := getEnvAsInt("SLEEPER_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_MAX_RETRIES: %w", err)
	}
	if sleeperMaxRetries < 0 {
		return Config{}, fmt.Errorf("SLEEPER_MAX_RETRIES must be >= 0")
	}
	sleeperRequestsPerSecond, err := getEnvAsFloat("SLEEPER_REQUESTS_PER_SECOND", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_REQUESTS_PER_SECOND: %w", err)
	}
	if sleeperRequestsPerSecond < 0 {
		return Config{}, fmt.Errorf("SLEEPER_REQUESTS_PER_SECOND must be >= 0")
	}
	sleeperCircuitEnabled, err := strconv.ParseBool(getEnv("SLEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_ENABLED: %w", err)
	}
	sleeperCircuitFailureCount, err := getEnvAsInt("SLEEPER_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if sleeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	sleeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("SLEEPER_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if sleeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	sleeperCircuitHalfOpenMaxReq, err := getEnvAsInt("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if sleeperCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SLEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	draftTopN, err := getEnvAsInt("DRAFT_TOP_N", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_TOP_N: %w", err)
	}
	if draftTopN < 1 {
		return Config{}, fmt.Errorf("DRAFT_TOP_N must be >= 1")
	}
	draftDefaultProjection, err := getEnvAsFloat("DRAFT_DEFAULT_PROJECTION", 200)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_DEFAULT_PROJECTION: %w", err)
	}
	if draftDefaultProjection < 0 {
		return Config{}, fmt.Errorf("DRAFT_DEFAULT_PROJECTION must be >= 0")
	}
	draftDefaultTier, err := getEnvAsInt("DRAFT_DEFAULT_TIER", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_DEFAULT_TIER: %w", err)
	}
	if draftDefaultTier < 1 {
		return Config{}, fmt.Errorf("DRAFT_DEFAULT_TIER must be >= 1")
	}
	draftDefaultADP, err := getEnvAsFloat("DRAFT_DEFAULT_ADP", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse DRAFT_DEFAULT_ADP: %w", err)
	}
	if draftDefaultADP < 0 {
		return Config{}, fmt.Errorf("DRAFT_DEFAULT_ADP must be >= 0")
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("SERVICE_NAME", "draft-assistant"),
		ServiceVersion:               getEnv("SERVICE_VERSION", "dev"),
		LogLevel:                     parseLogLevel(getEnv("APP_LOG_LEVEL", "warn")),
		LogFormat:                    logging.ParseFormat(getEnv("APP_LOG_FORMAT", logFormatDefault)),
		PlayerSource:                 playerSource,
		SleeperBaseURL:               strings.TrimSpace(getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1")),
		SleeperSport:                 strings.ToLower(strings.TrimSpace(getEnv("SLEEPER_SPORT", "nfl"))),
		SleeperTimeout:               sleeperTimeout,
		SleeperMaxRetries:            sleeperMaxRetries,
		SleeperRequestsPerSecond:     sleeperRequestsPerSecond,
		SleeperCircuitEnabled:        sleeperCircuitEnabled,
		SleeperCircuitFailureCount:   sleeperCircuitFailureCount,
		SleeperCircuitOpenTimeout:    sleeperCircuitOpenTimeout,
		SleeperCircuitHalfOpenMaxReq: sleeperCircuitHalfOpenMaxReq,
		CacheEnabled:                 cacheEnabled,
		CacheTTL:                     cacheTTL,
		DraftTopN:                    draftTopN,
		DraftDefaultProjection:       draftDefaultProjection,
		DraftDefaultTier:             draftDefaultTier,
		DraftDefaultADP:              draftDefaultADP,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "info":
		return logging.LevelInfo
	case "error":
		return logging.LevelError
	default:
		return logging.LevelWarn
	}
}

func parsePlayerSource(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case PlayerSourceSleeper, PlayerSourceMemory:
		return value, nil
	default:
		return "", fmt.Errorf("invalid PLAYER_SOURCE %q: valid values are %s, %s", v, PlayerSourceSleeper, PlayerSourceMemory)
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

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseFloat(value, 64)
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
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

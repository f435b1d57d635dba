package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openforecast/arena/internal/platform/logging"
)

// Config stores runtime configuration for the scoring core.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	DBURL    string
	DemoMode bool
	// DBDisablePreparedBinaryResult appends the pgbouncer-friendly
	// disable_prepared_binary_result flag to the connection URL.
	DBDisablePreparedBinaryResult bool

	CacheEnabled        bool
	LeaderboardCacheTTL time.Duration

	OverviewMaxWorkers     int
	RefreshMaxWorkers      int
	UpcomingDeadlinesLimit int

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	demoMode, err := getEnvAsBool("ARENA_DEMO", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse ARENA_DEMO: %w", err)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" && !demoMode {
		return Config{}, fmt.Errorf("DB_URL is required unless ARENA_DEMO=1")
	}

	dbDisablePrepared, err := getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := getEnvAsBool("CACHE_ENABLED", true)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsDuration("LEADERBOARD_CACHE_TTL", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEADERBOARD_CACHE_TTL: %w", err)
	}

	overviewWorkers, err := getEnvAsInt("OVERVIEW_MAX_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse OVERVIEW_MAX_WORKERS: %w", err)
	}
	if overviewWorkers <= 0 {
		return Config{}, fmt.Errorf("OVERVIEW_MAX_WORKERS must be > 0")
	}
	refreshWorkers, err := getEnvAsInt("REFRESH_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_MAX_WORKERS: %w", err)
	}
	if refreshWorkers <= 0 {
		return Config{}, fmt.Errorf("REFRESH_MAX_WORKERS must be > 0")
	}

	deadlinesLimit, err := getEnvAsInt("UPCOMING_DEADLINES_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPCOMING_DEADLINES_LIMIT: %w", err)
	}
	if deadlinesLimit <= 0 {
		return Config{}, fmt.Errorf("UPCOMING_DEADLINES_LIMIT must be > 0")
	}

	uptraceEnabled, err := getEnvAsBool("UPTRACE_ENABLED", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := getEnvAsBool("PYROSCOPE_ENABLED", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeAddr := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeAddr == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	serviceName := getEnv("SERVICE_NAME", "forecast-arena")

	return Config{
		AppEnv:         appEnv,
		ServiceName:    serviceName,
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),

		DBURL:                         dbURL,
		DemoMode:                      demoMode,
		DBDisablePreparedBinaryResult: dbDisablePrepared,

		CacheEnabled:        cacheEnabled,
		LeaderboardCacheTTL: cacheTTL,

		OverviewMaxWorkers:     overviewWorkers,
		RefreshMaxWorkers:      refreshWorkers,
		UpcomingDeadlinesLimit: deadlinesLimit,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeAddr,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:         getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
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

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseBool(value)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
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

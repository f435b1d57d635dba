package config

import (
	"testing"
	"time"

	"github.com/openforecast/arena/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresDBURLUnlessDemo(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "")
	t.Setenv("ARENA_DEMO", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DB_URL")
	}

	t.Setenv("ARENA_DEMO", "1")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error in demo mode: %v", err)
	}
	if !cfg.DemoMode {
		t.Fatalf("expected demo mode to be on")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ARENA_DEMO", "1")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ARENA_DEMO", "1")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LEADERBOARD_CACHE_TTL", "")
	t.Setenv("OVERVIEW_MAX_WORKERS", "")
	t.Setenv("UPCOMING_DEADLINES_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.LeaderboardCacheTTL != 30*time.Second {
		t.Fatalf("default cache ttl = %v", cfg.LeaderboardCacheTTL)
	}
	if cfg.OverviewMaxWorkers != 8 {
		t.Fatalf("default overview workers = %d", cfg.OverviewMaxWorkers)
	}
	if cfg.UpcomingDeadlinesLimit != 5 {
		t.Fatalf("default deadlines limit = %d", cfg.UpcomingDeadlinesLimit)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("default log level = %v", cfg.LogLevel)
	}
	if cfg.ServiceName != "forecast-arena" {
		t.Fatalf("default service name = %q", cfg.ServiceName)
	}
}

func TestLoad_WorkerValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ARENA_DEMO", "1")
	t.Setenv("OVERVIEW_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for OVERVIEW_MAX_WORKERS=0")
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want logging.Level
	}{
		{in: "debug", want: logging.LevelDebug},
		{in: "WARN", want: logging.LevelWarn},
		{in: "warning", want: logging.LevelWarn},
		{in: "error", want: logging.LevelError},
		{in: "", want: logging.LevelInfo},
		{in: "nonsense", want: logging.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLogLevel(tc.in); got != tc.want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

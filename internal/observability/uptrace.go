package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/openforecast/arena/internal/config"
	"github.com/openforecast/arena/internal/platform/logging"
)

// InitUptrace configures global OpenTelemetry providers for Uptrace. The
// returned shutdown func flushes pending telemetry.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled")
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)

	return uptrace.Shutdown, nil
}

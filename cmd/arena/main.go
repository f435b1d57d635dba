package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openforecast/arena/internal/app"
	"github.com/openforecast/arena/internal/config"
	"github.com/openforecast/arena/internal/interfaces/export"
	"github.com/openforecast/arena/internal/observability"
	"github.com/openforecast/arena/internal/platform/logging"
	"github.com/openforecast/arena/internal/usecase"
)

const usageText = `usage: arena <command> [flags]

commands:
  leaderboard   ranked Brier scores for a competition
  stats         prop status counts and upcoming deadlines for a viewer
  distribution  smoothed probability density for a prop's forecasts
  overview      per-member participation report for a competition
  submit        record or update a forecast
  resolve       record a prop's outcome
  refresh       rebuild stored leaderboard snapshots for all competitions

Set ARENA_DEMO=1 to run against the built-in demo dataset instead of
postgres.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	runErr := run(ctx, application, cfg, os.Args[1], os.Args[2:])

	stop()
	if err := application.Close(); err != nil {
		logger.Warn("close app", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Warn("stop profiler", "error", err)
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("flush telemetry", "error", err)
	}
	cancel()

	if runErr != nil {
		logger.Error("command failed", "command", os.Args[1], "error", runErr)
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.App, cfg config.Config, command string, args []string) error {
	enc := export.NewPrettyEncoder(os.Stdout)

	switch command {
	case "leaderboard":
		return runLeaderboard(ctx, application, enc, args)
	case "stats":
		return runStats(ctx, application, cfg, enc, args)
	case "distribution":
		return runDistribution(ctx, application, enc, args)
	case "overview":
		return runOverview(ctx, application, enc, args)
	case "submit":
		return runSubmit(ctx, application, enc, args)
	case "resolve":
		return runResolve(ctx, application, enc, args)
	case "refresh":
		return runRefresh(ctx, application, enc)
	case "help", "-h", "--help":
		fmt.Println(usageText)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLeaderboard(ctx context.Context, application *app.App, enc *export.Encoder, args []string) error {
	fs := flag.NewFlagSet("leaderboard", flag.ExitOnError)
	compID := fs.String("competition", "", "competition id")
	viewerID := fs.String("as", "", "viewer user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := application.Leaderboards.CompetitionLeaderboard(ctx, *compID, *viewerID)
	if err != nil {
		return err
	}
	return enc.Encode("leaderboard", result)
}

func runStats(ctx context.Context, application *app.App, cfg config.Config, enc *export.Encoder, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	compID := fs.String("competition", "", "competition id")
	viewerID := fs.String("as", "", "viewer user id")
	limit := fs.Int("deadlines", cfg.UpcomingDeadlinesLimit, "max upcoming deadlines to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := application.Stats.CompetitionStats(ctx, *compID, *viewerID)
	if err != nil {
		return err
	}
	deadlines, err := application.Stats.UpcomingDeadlines(ctx, *compID, *viewerID, *limit)
	if err != nil {
		return err
	}

	return enc.Encode("stats", struct {
		Stats     usecase.CompetitionStats   `json:"stats"`
		Deadlines []usecase.UpcomingDeadline `json:"upcomingDeadlines"`
	}{Stats: stats, Deadlines: deadlines})
}

func runDistribution(ctx context.Context, application *app.App, enc *export.Encoder, args []string) error {
	fs := flag.NewFlagSet("distribution", flag.ExitOnError)
	propID := fs.String("prop", "", "prop id")
	viewerID := fs.String("as", "", "viewer user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dist, err := application.Distributions.PropDistribution(ctx, *propID, *viewerID)
	if err != nil {
		return err
	}
	return enc.Encode("distribution", dist)
}

func runOverview(ctx context.Context, application *app.App, enc *export.Encoder, args []string) error {
	fs := flag.NewFlagSet("overview", flag.ExitOnError)
	compID := fs.String("competition", "", "competition id")
	viewerID := fs.String("as", "", "viewer user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	overview, err := application.Overview.CompetitionOverview(ctx, *compID, *viewerID)
	if err != nil {
		return err
	}
	return enc.Encode("overview", overview)
}

func runSubmit(ctx context.Context, application *app.App, enc *export.Encoder, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	propID := fs.String("prop", "", "prop id")
	userID := fs.String("as", "", "forecasting user id")
	probability := fs.Float64("p", -1, "probability in [0,1]")
	if err := fs.Parse(args); err != nil {
		return err
	}

	item, err := application.Forecasts.Submit(ctx, usecase.SubmitForecastInput{
		UserID:      *userID,
		PropID:      *propID,
		Probability: *probability,
	})
	if err != nil {
		return err
	}
	return enc.Encode("forecast", item)
}

func runResolve(ctx context.Context, application *app.App, enc *export.Encoder, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	propID := fs.String("prop", "", "prop id")
	actorID := fs.String("as", "", "resolving user id")
	outcome := fs.Bool("outcome", false, "realized outcome")
	notes := fs.String("notes", "", "resolution notes")
	overwrite := fs.Bool("overwrite", false, "replace an existing resolution")
	if err := fs.Parse(args); err != nil {
		return err
	}

	item, err := application.Resolutions.Resolve(ctx, usecase.ResolveInput{
		PropID:    *propID,
		ActorID:   *actorID,
		Outcome:   *outcome,
		Notes:     *notes,
		Overwrite: *overwrite,
	})
	if err != nil {
		return err
	}
	return enc.Encode("resolution", item)
}

func runRefresh(ctx context.Context, application *app.App, enc *export.Encoder) error {
	report, err := application.Refresh.RefreshAll(ctx)
	if err != nil {
		return err
	}
	return enc.Encode("refresh", report)
}

package app

import (
	"github.com/openforecast/arena/internal/config"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/resolution"
	"github.com/openforecast/arena/internal/domain/scoring"
	"github.com/openforecast/arena/internal/domain/user"
	"github.com/openforecast/arena/internal/infrastructure/repository/memory"
	"github.com/openforecast/arena/internal/infrastructure/repository/postgres"
	"github.com/openforecast/arena/internal/platform/cache"
	idgen "github.com/openforecast/arena/internal/platform/id"
	"github.com/openforecast/arena/internal/platform/logging"
	"github.com/openforecast/arena/internal/usecase"
)

// App bundles the wired services behind the CLI. Close releases the
// database pool when one was opened.
type App struct {
	Leaderboards  *usecase.LeaderboardService
	Stats         *usecase.StatsService
	Distributions *usecase.DistributionService
	Forecasts     *usecase.ForecastService
	Resolutions   *usecase.ResolutionService
	Overview      *usecase.OverviewService
	Refresh       *usecase.RefreshService

	close func() error
}

type repositories struct {
	users        user.Repository
	competitions competition.Repository
	props        prop.Repository
	forecasts    forecast.Repository
	resolutions  resolution.Repository
	scored       scoring.Repository
	snapshots    scoring.SnapshotRepository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	var (
		repos   repositories
		cleanup func() error
	)

	if cfg.DemoMode {
		repos = demoRepositories()
		logger.Info("using in-memory demo dataset")
	} else {
		db, err := connectDB(cfg.DBURL, cfg.DBDisablePreparedBinaryResult)
		if err != nil {
			return nil, err
		}
		cleanup = db.Close
		repos = repositories{
			users:        postgres.NewUserRepository(db),
			competitions: postgres.NewCompetitionRepository(db),
			props:        postgres.NewPropRepository(db),
			forecasts:    postgres.NewForecastRepository(db),
			resolutions:  postgres.NewResolutionRepository(db),
			scored:       postgres.NewScoringRepository(db),
			snapshots:    postgres.NewSnapshotRepository(db),
		}
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.LeaderboardCacheTTL)
	}

	return &App{
		Leaderboards: usecase.NewLeaderboardService(repos.users, repos.competitions, repos.scored, store),
		Stats: usecase.NewStatsService(
			repos.users, repos.competitions, repos.props, repos.forecasts, repos.resolutions,
		),
		Distributions: usecase.NewDistributionService(
			repos.users, repos.competitions, repos.props, repos.forecasts,
		),
		Forecasts: usecase.NewForecastService(
			repos.users, repos.competitions, repos.props, repos.forecasts, repos.resolutions,
			idgen.NewPrefixedGenerator("fc"), store,
		),
		Resolutions: usecase.NewResolutionService(
			repos.users, repos.competitions, repos.props, repos.resolutions,
			idgen.NewPrefixedGenerator("res"), store,
		),
		Overview: usecase.NewOverviewService(
			repos.users, repos.competitions, repos.props, repos.forecasts, repos.resolutions,
			logger, cfg.OverviewMaxWorkers,
		),
		Refresh: usecase.NewRefreshService(
			repos.competitions, repos.scored, repos.snapshots, store, logger, cfg.RefreshMaxWorkers,
		),
		close: cleanup,
	}, nil
}

func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

func demoRepositories() repositories {
	users := memory.NewUserRepository(memory.SeedUsers())
	props := memory.NewPropRepository(memory.SeedProps())
	forecasts := memory.NewForecastRepository(memory.SeedForecasts())
	resolutions := memory.NewResolutionRepository(memory.SeedResolutions())

	return repositories{
		users:        users,
		competitions: memory.NewCompetitionRepository(memory.SeedCompetitions(), memory.SeedMemberships()),
		props:        props,
		forecasts:    forecasts,
		resolutions:  resolutions,
		scored:       memory.NewScoringRepository(users, props, forecasts, resolutions),
		snapshots:    memory.NewSnapshotRepository(),
	}
}

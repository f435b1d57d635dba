package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/openforecast/arena/internal/domain/access"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/resolution"
	"github.com/openforecast/arena/internal/domain/user"
)

// CompetitionStats summarizes where a competition's props stand for one viewer.
// Each prop is counted in exactly one of Resolved, Closed or ToForecast;
// props the viewer already forecast and that are still open only show up in Total.
type CompetitionStats struct {
	CompetitionID string `json:"competitionId"`
	Total         int    `json:"total"`
	Resolved      int    `json:"resolved"`
	Closed        int    `json:"closed"`
	ToForecast    int    `json:"toForecast"`
}

// UpcomingDeadline is an open prop whose forecast window closes in the future.
type UpcomingDeadline struct {
	PropID     string    `json:"propId"`
	PropText   string    `json:"propText"`
	Deadline   time.Time `json:"deadline"`
	Forecasted bool      `json:"forecasted"`
}

type StatsService struct {
	userRepo       user.Repository
	compRepo       competition.Repository
	propRepo       prop.Repository
	forecastRepo   forecast.Repository
	resolutionRepo resolution.Repository

	now func() time.Time
}

func NewStatsService(
	userRepo user.Repository,
	compRepo competition.Repository,
	propRepo prop.Repository,
	forecastRepo forecast.Repository,
	resolutionRepo resolution.Repository,
) *StatsService {
	return &StatsService{
		userRepo:       userRepo,
		compRepo:       compRepo,
		propRepo:       propRepo,
		forecastRepo:   forecastRepo,
		resolutionRepo: resolutionRepo,
		now:            time.Now,
	}
}

func (s *StatsService) CompetitionStats(ctx context.Context, competitionID, viewerID string) (CompetitionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CompetitionStats")
	defer span.End()

	viewer, comp, props, err := s.loadCompetitionProps(ctx, competitionID, viewerID)
	if err != nil {
		return CompetitionStats{}, err
	}

	forecasts, resolutions, err := s.loadPropState(ctx, viewer.ID, props)
	if err != nil {
		return CompetitionStats{}, err
	}

	stats := CompetitionStats{CompetitionID: comp.ID, Total: len(props)}
	now := s.now()
	for _, p := range props {
		switch {
		case hasResolution(resolutions, p.ID):
			stats.Resolved++
		case deadlinePassed(effectiveDeadline(p, &comp), now):
			stats.Closed++
		case !hasForecast(forecasts, p.ID):
			stats.ToForecast++
		}
	}
	return stats, nil
}

// UpcomingDeadlines lists the competition's open props with a future deadline,
// soonest first, annotated with whether the viewer already forecast them.
func (s *StatsService) UpcomingDeadlines(ctx context.Context, competitionID, viewerID string, limit int) ([]UpcomingDeadline, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.UpcomingDeadlines")
	defer span.End()

	viewer, comp, props, err := s.loadCompetitionProps(ctx, competitionID, viewerID)
	if err != nil {
		return nil, err
	}

	forecasts, resolutions, err := s.loadPropState(ctx, viewer.ID, props)
	if err != nil {
		return nil, err
	}

	now := s.now()
	deadlines := make([]UpcomingDeadline, 0, len(props))
	for _, p := range props {
		if hasResolution(resolutions, p.ID) {
			continue
		}
		due := effectiveDeadline(p, &comp)
		if due == nil || !due.After(now) {
			continue
		}
		deadlines = append(deadlines, UpcomingDeadline{
			PropID:     p.ID,
			PropText:   p.Text,
			Deadline:   *due,
			Forecasted: hasForecast(forecasts, p.ID),
		})
	}

	sort.SliceStable(deadlines, func(i, j int) bool {
		if !deadlines[i].Deadline.Equal(deadlines[j].Deadline) {
			return deadlines[i].Deadline.Before(deadlines[j].Deadline)
		}
		return deadlines[i].PropID < deadlines[j].PropID
	})

	if limit > 0 && len(deadlines) > limit {
		deadlines = deadlines[:limit]
	}
	return deadlines, nil
}

func (s *StatsService) loadCompetitionProps(ctx context.Context, competitionID, viewerID string) (user.User, competition.Competition, []prop.Prop, error) {
	viewer, err := loadViewer(ctx, s.userRepo, viewerID)
	if err != nil {
		return user.User{}, competition.Competition{}, nil, err
	}
	comp, err := loadCompetition(ctx, s.compRepo, competitionID)
	if err != nil {
		return user.User{}, competition.Competition{}, nil, err
	}
	membership, err := lookupMembership(ctx, s.compRepo, comp.ID, viewer.ID)
	if err != nil {
		return user.User{}, competition.Competition{}, nil, err
	}
	if !access.CanViewCompetition(viewer, comp, membership) {
		return user.User{}, competition.Competition{}, nil, fmt.Errorf("%w: competition=%s user=%s", ErrUnauthorized, comp.ID, viewer.ID)
	}

	props, err := s.propRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return user.User{}, competition.Competition{}, nil, fmt.Errorf("list competition props: %w", err)
	}
	return viewer, comp, props, nil
}

func (s *StatsService) loadPropState(ctx context.Context, viewerID string, props []prop.Prop) (map[string]forecast.Forecast, map[string]resolution.Resolution, error) {
	propIDs := make([]string, 0, len(props))
	for _, p := range props {
		propIDs = append(propIDs, p.ID)
	}

	forecastRows, err := s.forecastRepo.ListByUserAndProps(ctx, viewerID, propIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("list viewer forecasts: %w", err)
	}
	resolutionRows, err := s.resolutionRepo.ListByProps(ctx, propIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("list resolutions: %w", err)
	}

	forecasts := make(map[string]forecast.Forecast, len(forecastRows))
	for _, f := range forecastRows {
		forecasts[f.PropID] = f
	}
	resolutions := make(map[string]resolution.Resolution, len(resolutionRows))
	for _, r := range resolutionRows {
		resolutions[r.PropID] = r
	}
	return forecasts, resolutions, nil
}

func hasResolution(resolutions map[string]resolution.Resolution, propID string) bool {
	_, ok := resolutions[propID]
	return ok
}

func hasForecast(forecasts map[string]forecast.Forecast, propID string) bool {
	_, ok := forecasts[propID]
	return ok
}

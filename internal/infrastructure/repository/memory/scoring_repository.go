package memory

import (
	"context"

	"github.com/openforecast/arena/internal/domain/category"
	"github.com/openforecast/arena/internal/domain/scoring"
)

// ScoringRepository joins props, forecasts, resolutions and users into the
// flat scored rows the aggregator consumes, the way the SQL repository's
// join query does against postgres.
type ScoringRepository struct {
	users       *UserRepository
	props       *PropRepository
	forecasts   *ForecastRepository
	resolutions *ResolutionRepository
}

func NewScoringRepository(
	users *UserRepository,
	props *PropRepository,
	forecasts *ForecastRepository,
	resolutions *ResolutionRepository,
) *ScoringRepository {
	return &ScoringRepository{
		users:       users,
		props:       props,
		forecasts:   forecasts,
		resolutions: resolutions,
	}
}

func (r *ScoringRepository) ListByCompetition(ctx context.Context, competitionID string) ([]scoring.ScoredForecast, error) {
	props, err := r.props.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	rows := make([]scoring.ScoredForecast, 0)
	for _, p := range props {
		forecasts, err := r.forecasts.ListByProp(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		res, resolved, err := r.resolutions.GetByProp(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		for _, f := range forecasts {
			u, exists, err := r.users.GetByID(ctx, f.UserID)
			if err != nil {
				return nil, err
			}
			if !exists || !u.IsActive {
				continue
			}

			row := scoring.ScoredForecast{
				UserID:      f.UserID,
				UserName:    u.DisplayName,
				PropID:      p.ID,
				Category:    category.KeyForPtr(p.CategoryID),
				Probability: f.Probability,
			}
			if resolved {
				outcome := res.Outcome
				row.Outcome = &outcome
				row = row.WithScore()
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

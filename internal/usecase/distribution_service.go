package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/openforecast/arena/internal/domain/access"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/distribution"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/user"
)

// PropDistribution is the smoothed crowd view of a single prop: the density
// curve over probability space plus how many forecasts fed it.
type PropDistribution struct {
	PropID        string               `json:"propId"`
	ForecastCount int                  `json:"forecastCount"`
	Points        []distribution.Point `json:"points"`
}

type DistributionService struct {
	userRepo     user.Repository
	compRepo     competition.Repository
	propRepo     prop.Repository
	forecastRepo forecast.Repository
}

func NewDistributionService(
	userRepo user.Repository,
	compRepo competition.Repository,
	propRepo prop.Repository,
	forecastRepo forecast.Repository,
) *DistributionService {
	return &DistributionService{
		userRepo:     userRepo,
		compRepo:     compRepo,
		propRepo:     propRepo,
		forecastRepo: forecastRepo,
	}
}

func (s *DistributionService) PropDistribution(ctx context.Context, propID, viewerID string) (PropDistribution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DistributionService.PropDistribution")
	defer span.End()

	viewer, err := loadViewer(ctx, s.userRepo, viewerID)
	if err != nil {
		return PropDistribution{}, err
	}

	propID = strings.TrimSpace(propID)
	if propID == "" {
		return PropDistribution{}, fmt.Errorf("%w: prop id is required", ErrInvalidInput)
	}
	p, exists, err := s.propRepo.GetByID(ctx, propID)
	if err != nil {
		return PropDistribution{}, fmt.Errorf("get prop: %w", err)
	}
	if !exists {
		return PropDistribution{}, fmt.Errorf("%w: prop=%s", ErrNotFound, propID)
	}

	comp, err := loadCompetitionForProp(ctx, s.compRepo, p)
	if err != nil {
		return PropDistribution{}, err
	}
	var membership *competition.Membership
	if comp != nil {
		membership, err = lookupMembership(ctx, s.compRepo, comp.ID, viewer.ID)
		if err != nil {
			return PropDistribution{}, err
		}
	}
	if !access.CanViewProp(viewer, p, comp, membership) {
		return PropDistribution{}, fmt.Errorf("%w: prop=%s user=%s", ErrUnauthorized, p.ID, viewer.ID)
	}

	forecasts, err := s.forecastRepo.ListByProp(ctx, p.ID)
	if err != nil {
		return PropDistribution{}, fmt.Errorf("list prop forecasts: %w", err)
	}

	probabilities := make([]float64, 0, len(forecasts))
	for _, f := range forecasts {
		probabilities = append(probabilities, f.Probability)
	}

	return PropDistribution{
		PropID:        p.ID,
		ForecastCount: len(forecasts),
		Points:        distribution.Estimate(probabilities),
	}, nil
}

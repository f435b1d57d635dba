package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openforecast/arena/internal/domain/access"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/resolution"
	"github.com/openforecast/arena/internal/domain/user"
	"github.com/openforecast/arena/internal/platform/cache"
	"github.com/openforecast/arena/internal/platform/id"
)

// SubmitForecastInput carries one probability estimate. Probability is a
// fraction, not a percentage.
type SubmitForecastInput struct {
	UserID      string  `validate:"required"`
	PropID      string  `validate:"required"`
	Probability float64 `validate:"gte=0,lte=1"`
}

type ForecastService struct {
	userRepo       user.Repository
	compRepo       competition.Repository
	propRepo       prop.Repository
	forecastRepo   forecast.Repository
	resolutionRepo resolution.Repository
	idGen          id.Generator
	store          *cache.Store
	validate       *validator.Validate

	now func() time.Time
}

func NewForecastService(
	userRepo user.Repository,
	compRepo competition.Repository,
	propRepo prop.Repository,
	forecastRepo forecast.Repository,
	resolutionRepo resolution.Repository,
	idGen id.Generator,
	store *cache.Store,
) *ForecastService {
	return &ForecastService{
		userRepo:       userRepo,
		compRepo:       compRepo,
		propRepo:       propRepo,
		forecastRepo:   forecastRepo,
		resolutionRepo: resolutionRepo,
		idGen:          idGen,
		store:          store,
		validate:       validator.New(),
		now:            time.Now,
	}
}

// Submit records or overwrites the caller's forecast for a prop. Forecasting
// stays open until the prop's effective deadline and stops for good once a
// resolution lands, even when the resolution arrives early.
func (s *ForecastService) Submit(ctx context.Context, input SubmitForecastInput) (forecast.Forecast, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ForecastService.Submit")
	defer span.End()

	if err := s.validate.Struct(input); err != nil {
		return forecast.Forecast{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	viewer, err := loadViewer(ctx, s.userRepo, input.UserID)
	if err != nil {
		return forecast.Forecast{}, err
	}
	p, comp, membership, err := s.loadPropContext(ctx, input.PropID, viewer.ID)
	if err != nil {
		return forecast.Forecast{}, err
	}
	if !access.CanViewProp(viewer, p, comp, membership) {
		return forecast.Forecast{}, fmt.Errorf("%w: prop=%s user=%s", ErrUnauthorized, p.ID, viewer.ID)
	}

	if _, resolved, err := s.resolutionRepo.GetByProp(ctx, p.ID); err != nil {
		return forecast.Forecast{}, fmt.Errorf("get resolution: %w", err)
	} else if resolved {
		return forecast.Forecast{}, fmt.Errorf("%w: prop=%s is resolved", ErrForecastingClosed, p.ID)
	}

	now := s.now()
	if deadlinePassed(effectiveDeadline(p, comp), now) {
		return forecast.Forecast{}, fmt.Errorf("%w: prop=%s", ErrForecastingClosed, p.ID)
	}

	item, exists, err := s.forecastRepo.GetByUserAndProp(ctx, viewer.ID, p.ID)
	if err != nil {
		return forecast.Forecast{}, fmt.Errorf("get forecast: %w", err)
	}
	if exists {
		if !access.CanEditForecast(viewer, item) {
			return forecast.Forecast{}, fmt.Errorf("%w: forecast=%s user=%s", ErrUnauthorized, item.ID, viewer.ID)
		}
		item.Probability = input.Probability
		item.UpdatedAt = now
	} else {
		newID, err := s.idGen.NewID()
		if err != nil {
			return forecast.Forecast{}, fmt.Errorf("generate forecast id: %w", err)
		}
		item = forecast.Forecast{
			ID:          newID,
			UserID:      viewer.ID,
			PropID:      p.ID,
			Probability: input.Probability,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	if err := s.forecastRepo.Upsert(ctx, item); err != nil {
		return forecast.Forecast{}, fmt.Errorf("upsert forecast: %w", err)
	}

	s.invalidateLeaderboard(ctx, p)
	return item, nil
}

// Clear removes a forecast. Owners take back their own estimate; site and
// competition admins may clear on a member's behalf.
func (s *ForecastService) Clear(ctx context.Context, propID, targetUserID, actorID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ForecastService.Clear")
	defer span.End()

	actor, err := loadViewer(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}

	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		targetUserID = actor.ID
	}

	p, comp, membership, err := s.loadPropContext(ctx, propID, actor.ID)
	if err != nil {
		return err
	}

	item, exists, err := s.forecastRepo.GetByUserAndProp(ctx, targetUserID, p.ID)
	if err != nil {
		return fmt.Errorf("get forecast: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: forecast user=%s prop=%s", ErrNotFound, targetUserID, p.ID)
	}
	if !access.CanClearForecast(actor, item, comp, membership) {
		return fmt.Errorf("%w: forecast=%s user=%s", ErrUnauthorized, item.ID, actor.ID)
	}

	if err := s.forecastRepo.Delete(ctx, targetUserID, p.ID); err != nil {
		return fmt.Errorf("delete forecast: %w", err)
	}

	s.invalidateLeaderboard(ctx, p)
	return nil
}

func (s *ForecastService) loadPropContext(ctx context.Context, propID, viewerID string) (prop.Prop, *competition.Competition, *competition.Membership, error) {
	propID = strings.TrimSpace(propID)
	if propID == "" {
		return prop.Prop{}, nil, nil, fmt.Errorf("%w: prop id is required", ErrInvalidInput)
	}

	p, exists, err := s.propRepo.GetByID(ctx, propID)
	if err != nil {
		return prop.Prop{}, nil, nil, fmt.Errorf("get prop: %w", err)
	}
	if !exists {
		return prop.Prop{}, nil, nil, fmt.Errorf("%w: prop=%s", ErrNotFound, propID)
	}

	comp, err := loadCompetitionForProp(ctx, s.compRepo, p)
	if err != nil {
		return prop.Prop{}, nil, nil, err
	}
	var membership *competition.Membership
	if comp != nil {
		membership, err = lookupMembership(ctx, s.compRepo, comp.ID, viewerID)
		if err != nil {
			return prop.Prop{}, nil, nil, err
		}
	}
	return p, comp, membership, nil
}

func (s *ForecastService) invalidateLeaderboard(ctx context.Context, p prop.Prop) {
	if s.store == nil || p.CompetitionID == nil {
		return
	}
	s.store.Delete(ctx, leaderboardCacheKey(*p.CompetitionID))
}

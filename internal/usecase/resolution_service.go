package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openforecast/arena/internal/domain/access"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/resolution"
	"github.com/openforecast/arena/internal/domain/user"
	"github.com/openforecast/arena/internal/platform/cache"
	"github.com/openforecast/arena/internal/platform/id"
)

type ResolveInput struct {
	PropID  string
	ActorID string
	Outcome bool
	Notes   string
	// Overwrite replaces an existing resolution instead of failing on it.
	Overwrite bool
}

type ResolutionService struct {
	userRepo       user.Repository
	compRepo       competition.Repository
	propRepo       prop.Repository
	resolutionRepo resolution.Repository
	idGen          id.Generator
	store          *cache.Store

	now func() time.Time
}

func NewResolutionService(
	userRepo user.Repository,
	compRepo competition.Repository,
	propRepo prop.Repository,
	resolutionRepo resolution.Repository,
	idGen id.Generator,
	store *cache.Store,
) *ResolutionService {
	return &ResolutionService{
		userRepo:       userRepo,
		compRepo:       compRepo,
		propRepo:       propRepo,
		resolutionRepo: resolutionRepo,
		idGen:          idGen,
		store:          store,
		now:            time.Now,
	}
}

// Resolve records the realized outcome of a prop. Resolving freezes
// forecasting and makes the prop count toward scores.
func (s *ResolutionService) Resolve(ctx context.Context, input ResolveInput) (resolution.Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.Resolve")
	defer span.End()

	actor, p, comp, membership, err := s.loadResolveContext(ctx, input.PropID, input.ActorID)
	if err != nil {
		return resolution.Resolution{}, err
	}
	if !access.CanResolveProp(actor, p, comp, membership) {
		return resolution.Resolution{}, fmt.Errorf("%w: prop=%s user=%s", ErrUnauthorized, p.ID, actor.ID)
	}

	if _, exists, err := s.resolutionRepo.GetByProp(ctx, p.ID); err != nil {
		return resolution.Resolution{}, fmt.Errorf("get resolution: %w", err)
	} else if exists && !input.Overwrite {
		return resolution.Resolution{}, fmt.Errorf("%w: prop=%s", ErrAlreadyResolved, p.ID)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return resolution.Resolution{}, fmt.Errorf("generate resolution id: %w", err)
	}
	item := resolution.Resolution{
		ID:         newID,
		PropID:     p.ID,
		Outcome:    input.Outcome,
		Notes:      strings.TrimSpace(input.Notes),
		ResolvedBy: actor.ID,
		ResolvedAt: s.now(),
	}
	if err := s.resolutionRepo.Upsert(ctx, item); err != nil {
		return resolution.Resolution{}, fmt.Errorf("upsert resolution: %w", err)
	}

	s.invalidateLeaderboard(ctx, p)
	return item, nil
}

// Unresolve removes a prop's resolution, reopening it for forecasting when
// its deadline has not passed.
func (s *ResolutionService) Unresolve(ctx context.Context, propID, actorID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.Unresolve")
	defer span.End()

	actor, p, comp, membership, err := s.loadResolveContext(ctx, propID, actorID)
	if err != nil {
		return err
	}
	if !access.CanResolveProp(actor, p, comp, membership) {
		return fmt.Errorf("%w: prop=%s user=%s", ErrUnauthorized, p.ID, actor.ID)
	}

	if _, exists, err := s.resolutionRepo.GetByProp(ctx, p.ID); err != nil {
		return fmt.Errorf("get resolution: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: resolution for prop=%s", ErrNotFound, p.ID)
	}

	if err := s.resolutionRepo.DeleteByProp(ctx, p.ID); err != nil {
		return fmt.Errorf("delete resolution: %w", err)
	}

	s.invalidateLeaderboard(ctx, p)
	return nil
}

func (s *ResolutionService) loadResolveContext(ctx context.Context, propID, actorID string) (user.User, prop.Prop, *competition.Competition, *competition.Membership, error) {
	actor, err := loadViewer(ctx, s.userRepo, actorID)
	if err != nil {
		return user.User{}, prop.Prop{}, nil, nil, err
	}

	propID = strings.TrimSpace(propID)
	if propID == "" {
		return user.User{}, prop.Prop{}, nil, nil, fmt.Errorf("%w: prop id is required", ErrInvalidInput)
	}
	p, exists, err := s.propRepo.GetByID(ctx, propID)
	if err != nil {
		return user.User{}, prop.Prop{}, nil, nil, fmt.Errorf("get prop: %w", err)
	}
	if !exists {
		return user.User{}, prop.Prop{}, nil, nil, fmt.Errorf("%w: prop=%s", ErrNotFound, propID)
	}

	comp, err := loadCompetitionForProp(ctx, s.compRepo, p)
	if err != nil {
		return user.User{}, prop.Prop{}, nil, nil, err
	}
	var membership *competition.Membership
	if comp != nil {
		membership, err = lookupMembership(ctx, s.compRepo, comp.ID, actor.ID)
		if err != nil {
			return user.User{}, prop.Prop{}, nil, nil, err
		}
	}
	return actor, p, comp, membership, nil
}

func (s *ResolutionService) invalidateLeaderboard(ctx context.Context, p prop.Prop) {
	if s.store == nil || p.CompetitionID == nil {
		return
	}
	s.store.Delete(ctx, leaderboardCacheKey(*p.CompetitionID))
}

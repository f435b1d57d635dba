package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/openforecast/arena/internal/domain/access"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/scoring"
	"github.com/openforecast/arena/internal/domain/user"
	"github.com/openforecast/arena/internal/platform/cache"
)

// LeaderboardService turns scored forecast rows into ranked overall and
// per-category competition leaderboards.
type LeaderboardService struct {
	userRepo   user.Repository
	compRepo   competition.Repository
	scoredRepo scoring.Repository
	store      *cache.Store
}

func NewLeaderboardService(
	userRepo user.Repository,
	compRepo competition.Repository,
	scoredRepo scoring.Repository,
	store *cache.Store,
) *LeaderboardService {
	return &LeaderboardService{
		userRepo:   userRepo,
		compRepo:   compRepo,
		scoredRepo: scoredRepo,
		store:      store,
	}
}

func (s *LeaderboardService) CompetitionLeaderboard(ctx context.Context, competitionID, viewerID string) (scoring.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.CompetitionLeaderboard")
	defer span.End()

	viewer, err := loadViewer(ctx, s.userRepo, viewerID)
	if err != nil {
		return scoring.Result{}, err
	}
	comp, err := loadCompetition(ctx, s.compRepo, competitionID)
	if err != nil {
		return scoring.Result{}, err
	}
	membership, err := lookupMembership(ctx, s.compRepo, comp.ID, viewer.ID)
	if err != nil {
		return scoring.Result{}, err
	}
	if !access.CanViewCompetition(viewer, comp, membership) {
		return scoring.Result{}, fmt.Errorf("%w: competition=%s user=%s", ErrUnauthorized, comp.ID, viewer.ID)
	}

	if s.store == nil {
		return s.compute(ctx, comp.ID)
	}

	value, err := s.store.GetOrLoad(ctx, leaderboardCacheKey(comp.ID), func(ctx context.Context) (any, error) {
		return s.compute(ctx, comp.ID)
	})
	if err != nil {
		return scoring.Result{}, err
	}

	result, ok := value.(scoring.Result)
	if !ok {
		return scoring.Result{}, fmt.Errorf("unexpected cached leaderboard type %T", value)
	}
	return result, nil
}

func (s *LeaderboardService) compute(ctx context.Context, competitionID string) (scoring.Result, error) {
	rows, err := s.scoredRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("list scored forecasts: %w", err)
	}
	return scoring.Aggregate(rows), nil
}

func leaderboardCacheKey(competitionID string) string {
	return "leaderboard:" + strings.TrimSpace(competitionID)
}

package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openforecast/arena/internal/domain/category"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/scoring"
	"github.com/openforecast/arena/internal/domain/user"
	"github.com/openforecast/arena/internal/infrastructure/repository/memory"
	"github.com/openforecast/arena/internal/platform/cache"
)

type countingScoredRepo struct {
	rows  []scoring.ScoredForecast
	err   error
	calls atomic.Int64
}

func (r *countingScoredRepo) ListByCompetition(context.Context, string) ([]scoring.ScoredForecast, error) {
	r.calls.Add(1)
	return r.rows, r.err
}

func scoredRow(userID string, p float64, outcome bool) scoring.ScoredForecast {
	return scoring.ScoredForecast{
		UserID:      userID,
		UserName:    userID,
		PropID:      "prp-1",
		Category:    category.Uncategorized(),
		Probability: p,
		Outcome:     &outcome,
	}
}

func TestLeaderboardServiceRanksUsers(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository([]user.User{{ID: "usr-1", IsActive: true}})
	comps := memory.NewCompetitionRepository([]competition.Competition{
		{ID: "cmp-1", Visibility: competition.VisibilityPublic},
	}, nil)
	scored := &countingScoredRepo{rows: []scoring.ScoredForecast{
		scoredRow("usr-sharp", 0.9, true),
		scoredRow("usr-blunt", 0.2, true),
	}}

	svc := NewLeaderboardService(users, comps, scored, nil)

	result, err := svc.CompetitionLeaderboard(context.Background(), "cmp-1", "usr-1")
	if err != nil {
		t.Fatalf("CompetitionLeaderboard() error = %v", err)
	}
	if len(result.Overall) != 2 {
		t.Fatalf("len(Overall) = %d, want 2", len(result.Overall))
	}
	if result.Overall[0].UserID != "usr-sharp" || result.Overall[0].Rank != 1 {
		t.Errorf("Overall[0] = %+v, want usr-sharp at rank 1", result.Overall[0])
	}
	if result.Overall[1].UserID != "usr-blunt" || result.Overall[1].Rank != 2 {
		t.Errorf("Overall[1] = %+v, want usr-blunt at rank 2", result.Overall[1])
	}
}

func TestLeaderboardServicePrivateCompetitionRequiresMembership(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository([]user.User{
		{ID: "usr-member", IsActive: true},
		{ID: "usr-outside", IsActive: true},
	})
	comps := memory.NewCompetitionRepository([]competition.Competition{
		{ID: "cmp-priv", Visibility: competition.VisibilityPrivate},
	}, []competition.Membership{
		{CompetitionID: "cmp-priv", UserID: "usr-member", Role: competition.RoleForecaster},
	})
	scored := &countingScoredRepo{}

	svc := NewLeaderboardService(users, comps, scored, nil)

	if _, err := svc.CompetitionLeaderboard(context.Background(), "cmp-priv", "usr-member"); err != nil {
		t.Fatalf("member: CompetitionLeaderboard() error = %v", err)
	}
	_, err := svc.CompetitionLeaderboard(context.Background(), "cmp-priv", "usr-outside")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("outsider: CompetitionLeaderboard() error = %v, want ErrUnauthorized", err)
	}
}

func TestLeaderboardServiceCachesResult(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository([]user.User{{ID: "usr-1", IsActive: true}})
	comps := memory.NewCompetitionRepository([]competition.Competition{
		{ID: "cmp-1", Visibility: competition.VisibilityPublic},
	}, nil)
	scored := &countingScoredRepo{rows: []scoring.ScoredForecast{scoredRow("usr-a", 0.5, true)}}
	store := cache.NewStore(time.Minute)

	svc := NewLeaderboardService(users, comps, scored, store)

	for i := 0; i < 3; i++ {
		if _, err := svc.CompetitionLeaderboard(context.Background(), "cmp-1", "usr-1"); err != nil {
			t.Fatalf("call %d: CompetitionLeaderboard() error = %v", i, err)
		}
	}
	if got := scored.calls.Load(); got != 1 {
		t.Errorf("scored repo calls = %d, want 1 (cached)", got)
	}
}

func TestLeaderboardServiceRepoErrorNotCached(t *testing.T) {
	t.Parallel()

	users := memory.NewUserRepository([]user.User{{ID: "usr-1", IsActive: true}})
	comps := memory.NewCompetitionRepository([]competition.Competition{
		{ID: "cmp-1", Visibility: competition.VisibilityPublic},
	}, nil)
	scored := &countingScoredRepo{err: errors.New("connection reset")}
	store := cache.NewStore(time.Minute)

	svc := NewLeaderboardService(users, comps, scored, store)

	if _, err := svc.CompetitionLeaderboard(context.Background(), "cmp-1", "usr-1"); err == nil {
		t.Fatal("CompetitionLeaderboard() error = nil, want error")
	}

	scored.err = nil
	if _, err := svc.CompetitionLeaderboard(context.Background(), "cmp-1", "usr-1"); err != nil {
		t.Fatalf("retry: CompetitionLeaderboard() error = %v", err)
	}
}

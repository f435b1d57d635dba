package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/user"
)

func loadViewer(ctx context.Context, repo user.Repository, userID string) (user.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	viewer, exists, err := repo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	return viewer, nil
}

func loadCompetition(ctx context.Context, repo competition.Repository, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := repo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	return comp, nil
}

// loadCompetitionForProp resolves the prop's competition when it has one;
// personal and shared props return nil.
func loadCompetitionForProp(ctx context.Context, repo competition.Repository, p prop.Prop) (*competition.Competition, error) {
	if p.CompetitionID == nil {
		return nil, nil
	}
	comp, err := loadCompetition(ctx, repo, *p.CompetitionID)
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func lookupMembership(ctx context.Context, repo competition.Repository, competitionID, userID string) (*competition.Membership, error) {
	membership, exists, err := repo.GetMembership(ctx, competitionID, userID)
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return &membership, nil
}

// effectiveDeadline picks the deadline that closes forecasting for a prop:
// props in a public competition close with the competition, everything else
// closes with the prop's own due date. Nil means the prop never closes.
func effectiveDeadline(p prop.Prop, comp *competition.Competition) *time.Time {
	if comp != nil && !comp.IsPrivate() {
		return comp.ForecastsClose
	}
	return p.ForecastsDue
}

func deadlinePassed(deadline *time.Time, now time.Time) bool {
	return deadline != nil && deadline.Before(now)
}

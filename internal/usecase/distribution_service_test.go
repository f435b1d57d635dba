package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/user"
	"github.com/openforecast/arena/internal/infrastructure/repository/memory"
)

func distributionFixture(t *testing.T) *DistributionService {
	t.Helper()

	compID := "cmp-priv"
	owner := "usr-owner"

	users := memory.NewUserRepository([]user.User{
		{ID: "usr-member", IsActive: true},
		{ID: "usr-outside", IsActive: true},
		{ID: "usr-owner", IsActive: true},
	})
	comps := memory.NewCompetitionRepository([]competition.Competition{
		{ID: compID, Visibility: competition.VisibilityPrivate},
	}, []competition.Membership{
		{CompetitionID: compID, UserID: "usr-member", Role: competition.RoleForecaster},
	})
	props := memory.NewPropRepository([]prop.Prop{
		{ID: "prp-1", CompetitionID: &compID},
		{ID: "prp-empty", CompetitionID: &compID},
		{ID: "prp-personal", OwnerID: &owner},
	})
	forecasts := memory.NewForecastRepository([]forecast.Forecast{
		{ID: "fc-1", UserID: "usr-member", PropID: "prp-1", Probability: 0.3},
		{ID: "fc-2", UserID: "usr-owner", PropID: "prp-1", Probability: 0.7},
	})

	return NewDistributionService(users, comps, props, forecasts)
}

func TestDistributionServicePropDistribution(t *testing.T) {
	t.Parallel()

	svc := distributionFixture(t)

	dist, err := svc.PropDistribution(context.Background(), "prp-1", "usr-member")
	if err != nil {
		t.Fatalf("PropDistribution() error = %v", err)
	}
	if dist.ForecastCount != 2 {
		t.Errorf("ForecastCount = %d, want 2", dist.ForecastCount)
	}
	if len(dist.Points) != 101 {
		t.Errorf("len(Points) = %d, want 101", len(dist.Points))
	}
}

func TestDistributionServiceEmptyProp(t *testing.T) {
	t.Parallel()

	svc := distributionFixture(t)

	dist, err := svc.PropDistribution(context.Background(), "prp-empty", "usr-member")
	if err != nil {
		t.Fatalf("PropDistribution() error = %v", err)
	}
	if dist.ForecastCount != 0 {
		t.Errorf("ForecastCount = %d, want 0", dist.ForecastCount)
	}
	if dist.Points == nil || len(dist.Points) != 0 {
		t.Errorf("Points = %v, want empty non-nil slice", dist.Points)
	}
}

func TestDistributionServiceAccess(t *testing.T) {
	t.Parallel()

	svc := distributionFixture(t)

	if _, err := svc.PropDistribution(context.Background(), "prp-1", "usr-outside"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("outsider error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.PropDistribution(context.Background(), "prp-personal", "usr-member"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("personal prop error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.PropDistribution(context.Background(), "prp-missing", "usr-member"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing prop error = %v, want ErrNotFound", err)
	}
}

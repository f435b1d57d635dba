package access

import (
	"testing"

	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/user"
)

var (
	activeUser  = user.User{ID: "u1", DisplayName: "Alice", IsActive: true}
	otherUser   = user.User{ID: "u2", DisplayName: "Bob", IsActive: true}
	siteAdmin   = user.User{ID: "root", DisplayName: "Root", IsAdmin: true, IsActive: true}
	deactivated = user.User{ID: "u9", DisplayName: "Gone", IsAdmin: true, IsActive: false}

	publicComp  = competition.Competition{ID: "c-pub", Visibility: competition.VisibilityPublic}
	privateComp = competition.Competition{ID: "c-priv", Visibility: competition.VisibilityPrivate}
)

func membershipFor(userID string, role competition.Role) *competition.Membership {
	return &competition.Membership{CompetitionID: "c-priv", UserID: userID, Role: role}
}

func TestCanViewCompetition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		viewer     user.User
		comp       competition.Competition
		membership *competition.Membership
		want       bool
	}{
		{name: "active user sees public", viewer: activeUser, comp: publicComp, want: true},
		{name: "non-member denied private", viewer: activeUser, comp: privateComp, want: false},
		{name: "member sees private", viewer: activeUser, comp: privateComp, membership: membershipFor("u1", competition.RoleForecaster), want: true},
		{name: "someone else's membership does not help", viewer: activeUser, comp: privateComp, membership: membershipFor("u2", competition.RoleAdmin), want: false},
		{name: "site admin sees private", viewer: siteAdmin, comp: privateComp, want: true},
		{name: "deactivated admin denied", viewer: deactivated, comp: publicComp, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewCompetition(tc.viewer, tc.comp, tc.membership); got != tc.want {
				t.Fatalf("CanViewCompetition = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanManageCompetition(t *testing.T) {
	t.Parallel()

	if CanManageCompetition(activeUser, privateComp, membershipFor("u1", competition.RoleForecaster)) {
		t.Fatalf("forecaster must not manage the competition")
	}
	if !CanManageCompetition(activeUser, privateComp, membershipFor("u1", competition.RoleAdmin)) {
		t.Fatalf("competition admin must manage the competition")
	}
	if !CanManageCompetition(siteAdmin, privateComp, nil) {
		t.Fatalf("site admin must manage any competition")
	}
}

func TestCanViewProp(t *testing.T) {
	t.Parallel()

	owner := "u1"
	compID := "c-priv"
	personal := prop.Prop{ID: "p1", OwnerID: &owner}
	shared := prop.Prop{ID: "p2"}
	inPrivate := prop.Prop{ID: "p3", CompetitionID: &compID}

	tests := []struct {
		name       string
		viewer     user.User
		p          prop.Prop
		comp       *competition.Competition
		membership *competition.Membership
		want       bool
	}{
		{name: "owner sees personal prop", viewer: activeUser, p: personal, want: true},
		{name: "other user denied personal prop", viewer: otherUser, p: personal, want: false},
		{name: "site admin sees personal prop", viewer: siteAdmin, p: personal, want: true},
		{name: "shared prop open to active users", viewer: otherUser, p: shared, want: true},
		{name: "private competition prop needs membership", viewer: otherUser, p: inPrivate, comp: &privateComp, want: false},
		{name: "member sees private competition prop", viewer: otherUser, p: inPrivate, comp: &privateComp, membership: membershipFor("u2", competition.RoleForecaster), want: true},
		{name: "competition prop without loaded competition denied", viewer: otherUser, p: inPrivate, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewProp(tc.viewer, tc.p, tc.comp, tc.membership); got != tc.want {
				t.Fatalf("CanViewProp = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanResolveProp(t *testing.T) {
	t.Parallel()

	owner := "u1"
	compID := "c-priv"
	personal := prop.Prop{ID: "p1", OwnerID: &owner}
	inPrivate := prop.Prop{ID: "p3", CompetitionID: &compID}

	if !CanResolveProp(activeUser, personal, nil, nil) {
		t.Fatalf("owner must resolve a personal prop")
	}
	if CanResolveProp(otherUser, personal, nil, nil) {
		t.Fatalf("non-owner must not resolve a personal prop")
	}
	if CanResolveProp(otherUser, inPrivate, &privateComp, membershipFor("u2", competition.RoleForecaster)) {
		t.Fatalf("forecaster must not resolve a competition prop")
	}
	if !CanResolveProp(otherUser, inPrivate, &privateComp, membershipFor("u2", competition.RoleAdmin)) {
		t.Fatalf("competition admin must resolve a competition prop")
	}
}

func TestForecastPredicates(t *testing.T) {
	t.Parallel()

	f := forecast.Forecast{ID: "f1", UserID: "u1", PropID: "p1", Probability: 0.7}

	if !CanEditForecast(activeUser, f) {
		t.Fatalf("owner must edit own forecast")
	}
	if CanEditForecast(siteAdmin, f) {
		t.Fatalf("site admin must not rewrite another user's estimate")
	}
	if CanEditForecast(deactivated, forecast.Forecast{UserID: "u9"}) {
		t.Fatalf("deactivated user must not edit forecasts")
	}

	if !CanClearForecast(siteAdmin, f, nil, nil) {
		t.Fatalf("site admin must be able to clear forecasts")
	}
	if CanClearForecast(otherUser, f, nil, nil) {
		t.Fatalf("unrelated user must not clear forecasts")
	}
	if !CanClearForecast(otherUser, f, &privateComp, membershipFor("u2", competition.RoleAdmin)) {
		t.Fatalf("competition admin must be able to clear forecasts in their competition")
	}
}

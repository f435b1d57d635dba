package memory

import (
	"time"

	"github.com/openforecast/arena/internal/domain/category"
	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/forecast"
	"github.com/openforecast/arena/internal/domain/prop"
	"github.com/openforecast/arena/internal/domain/resolution"
	"github.com/openforecast/arena/internal/domain/user"
)

// Demo dataset: one public cup anybody can browse and one private circle
// with a membership list, enough props in each state (open, closed,
// resolved) to exercise every report.

const (
	UserIDAda   = "usr-ada"
	UserIDBrahe = "usr-brahe"
	UserIDCurie = "usr-curie"
	UserIDAdmin = "usr-admin"

	CategoryIDEconomy = "cat-economy"
	CategoryIDScience = "cat-science"

	CompetitionIDOpenCup = "cmp-open-cup-2026"
	CompetitionIDCircle  = "cmp-research-circle"
)

func SeedUsers() []user.User {
	return []user.User{
		{ID: UserIDAda, DisplayName: "Ada", Username: "ada", IsActive: true},
		{ID: UserIDBrahe, DisplayName: "Brahe", Username: "brahe", IsActive: true},
		{ID: UserIDCurie, DisplayName: "Curie", Username: "curie", IsActive: true},
		{ID: UserIDAdmin, DisplayName: "Site Admin", Username: "admin", IsAdmin: true, IsActive: true},
	}
}

func SeedCategories() []category.Category {
	return []category.Category{
		{ID: CategoryIDEconomy, Name: "Economy"},
		{ID: CategoryIDScience, Name: "Science"},
	}
}

func SeedCompetitions() []competition.Competition {
	closeAt := time.Date(2027, 6, 30, 23, 59, 0, 0, time.UTC)
	return []competition.Competition{
		{
			ID:             CompetitionIDOpenCup,
			Name:           "Open Forecast Cup 2026",
			Visibility:     competition.VisibilityPublic,
			ForecastsClose: &closeAt,
			CreatedBy:      UserIDAdmin,
			CreatedAt:      time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:         CompetitionIDCircle,
			Name:       "Research Circle",
			Visibility: competition.VisibilityPrivate,
			CreatedBy:  UserIDAda,
			CreatedAt:  time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedMemberships() []competition.Membership {
	joined := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return []competition.Membership{
		{CompetitionID: CompetitionIDOpenCup, UserID: UserIDAda, Role: competition.RoleForecaster, JoinedAt: joined},
		{CompetitionID: CompetitionIDOpenCup, UserID: UserIDBrahe, Role: competition.RoleForecaster, JoinedAt: joined},
		{CompetitionID: CompetitionIDOpenCup, UserID: UserIDCurie, Role: competition.RoleForecaster, JoinedAt: joined},
		{CompetitionID: CompetitionIDCircle, UserID: UserIDAda, Role: competition.RoleAdmin, JoinedAt: joined},
		{CompetitionID: CompetitionIDCircle, UserID: UserIDBrahe, Role: competition.RoleForecaster, JoinedAt: joined},
	}
}

func SeedProps() []prop.Prop {
	economy := CategoryIDEconomy
	science := CategoryIDScience
	openCup := CompetitionIDOpenCup
	circle := CompetitionIDCircle

	pastDue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	futureDue := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	return []prop.Prop{
		{
			ID:            "prp-rates-cut",
			Text:          "Will the central bank cut rates before July 2026?",
			CategoryID:    &economy,
			CompetitionID: &openCup,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		{
			ID:            "prp-fusion-gain",
			Text:          "Will a fusion experiment report net energy gain in 2026?",
			CategoryID:    &science,
			CompetitionID: &openCup,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		{
			ID:            "prp-launch-window",
			Text:          "Will the lunar cargo mission launch on schedule?",
			CategoryID:    &science,
			CompetitionID: &openCup,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		{
			ID:            "prp-paper-accepted",
			Text:          "Will the replication study be accepted at a top venue?",
			CompetitionID: &circle,
			ForecastsDue:  &futureDue,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		{
			ID:            "prp-grant-renewed",
			Text:          "Will the lab's grant be renewed this cycle?",
			CompetitionID: &circle,
			ForecastsDue:  &pastDue,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
	}
}

func SeedForecasts() []forecast.Forecast {
	at := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	mk := func(id, userID, propID string, p float64) forecast.Forecast {
		return forecast.Forecast{ID: id, UserID: userID, PropID: propID, Probability: p, CreatedAt: at, UpdatedAt: at}
	}

	return []forecast.Forecast{
		mk("fc-ada-rates", UserIDAda, "prp-rates-cut", 0.7),
		mk("fc-brahe-rates", UserIDBrahe, "prp-rates-cut", 0.4),
		mk("fc-curie-rates", UserIDCurie, "prp-rates-cut", 0.55),
		mk("fc-ada-fusion", UserIDAda, "prp-fusion-gain", 0.2),
		mk("fc-brahe-fusion", UserIDBrahe, "prp-fusion-gain", 0.35),
		mk("fc-ada-launch", UserIDAda, "prp-launch-window", 0.6),
		mk("fc-ada-paper", UserIDAda, "prp-paper-accepted", 0.8),
		mk("fc-brahe-grant", UserIDBrahe, "prp-grant-renewed", 0.5),
	}
}

func SeedResolutions() []resolution.Resolution {
	return []resolution.Resolution{
		{
			ID:         "res-rates-cut",
			PropID:     "prp-rates-cut",
			Outcome:    true,
			ResolvedBy: UserIDAdmin,
			ResolvedAt: time.Date(2026, 6, 18, 15, 0, 0, 0, time.UTC),
		},
		{
			ID:         "res-fusion-gain",
			PropID:     "prp-fusion-gain",
			Outcome:    false,
			ResolvedBy: UserIDAdmin,
			ResolvedAt: time.Date(2026, 7, 2, 15, 0, 0, 0, time.UTC),
		},
	}
}

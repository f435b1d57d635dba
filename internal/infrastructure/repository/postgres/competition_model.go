package postgres

import (
	"time"

	"github.com/openforecast/arena/internal/domain/competition"
)

type competitionTableModel struct {
	ID             string     `db:"id"`
	Name           string     `db:"name"`
	Visibility     string     `db:"visibility"`
	ForecastsClose *time.Time `db:"forecasts_close"`
	StartsAt       *time.Time `db:"starts_at"`
	EndsAt         *time.Time `db:"ends_at"`
	CreatedBy      string     `db:"created_by"`
	CreatedAt      time.Time  `db:"created_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:             row.ID,
		Name:           row.Name,
		Visibility:     competition.Visibility(row.Visibility),
		ForecastsClose: row.ForecastsClose,
		StartsAt:       row.StartsAt,
		EndsAt:         row.EndsAt,
		CreatedBy:      row.CreatedBy,
		CreatedAt:      row.CreatedAt,
	}
}

type membershipTableModel struct {
	CompetitionID string    `db:"competition_id"`
	UserID        string    `db:"user_id"`
	Role          string    `db:"role"`
	JoinedAt      time.Time `db:"joined_at"`
}

func membershipFromRow(row membershipTableModel) competition.Membership {
	return competition.Membership{
		CompetitionID: row.CompetitionID,
		UserID:        row.UserID,
		Role:          competition.Role(row.Role),
		JoinedAt:      row.JoinedAt,
	}
}

package postgres

import (
	"time"

	"github.com/openforecast/arena/internal/domain/prop"
)

type propTableModel struct {
	ID            string     `db:"id"`
	Text          string     `db:"text"`
	CategoryID    *string    `db:"category_id"`
	OwnerID       *string    `db:"owner_id"`
	CompetitionID *string    `db:"competition_id"`
	ForecastsDue  *time.Time `db:"forecasts_due"`
	ResolutionDue *time.Time `db:"resolution_due"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func propFromRow(row propTableModel) prop.Prop {
	return prop.Prop{
		ID:            row.ID,
		Text:          row.Text,
		CategoryID:    row.CategoryID,
		OwnerID:       row.OwnerID,
		CompetitionID: row.CompetitionID,
		ForecastsDue:  row.ForecastsDue,
		ResolutionDue: row.ResolutionDue,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

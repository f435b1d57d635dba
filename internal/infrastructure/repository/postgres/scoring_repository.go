package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/category"
	"github.com/openforecast/arena/internal/domain/scoring"
)

// listScoredQuery joins forecasts with their prop's category and, when
// present, the resolution outcome. The builder stops at single-table
// statements, so this one stays raw SQL.
const listScoredQuery = `
SELECT
    f.user_id,
    u.display_name AS user_name,
    f.prop_id,
    p.category_id,
    f.probability,
    r.outcome
FROM forecasts f
JOIN props p ON p.id = f.prop_id AND p.deleted_at IS NULL
JOIN users u ON u.id = f.user_id AND u.deleted_at IS NULL AND u.is_active
LEFT JOIN resolutions r ON r.prop_id = f.prop_id
WHERE p.competition_id = $1
ORDER BY f.user_id, f.prop_id`

type scoredRowModel struct {
	UserID      string  `db:"user_id"`
	UserName    string  `db:"user_name"`
	PropID      string  `db:"prop_id"`
	CategoryID  *string `db:"category_id"`
	Probability float64 `db:"probability"`
	Outcome     *bool   `db:"outcome"`
}

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) ListByCompetition(ctx context.Context, competitionID string) ([]scoring.ScoredForecast, error) {
	var rows []scoredRowModel
	if err := r.db.SelectContext(ctx, &rows, listScoredQuery, competitionID); err != nil {
		return nil, fmt.Errorf("list scored forecasts: %w", err)
	}

	out := make([]scoring.ScoredForecast, 0, len(rows))
	for _, row := range rows {
		item := scoring.ScoredForecast{
			UserID:      row.UserID,
			UserName:    row.UserName,
			PropID:      row.PropID,
			Category:    category.KeyForPtr(row.CategoryID),
			Probability: row.Probability,
			Outcome:     row.Outcome,
		}
		out = append(out, item.WithScore())
	}

	return out, nil
}

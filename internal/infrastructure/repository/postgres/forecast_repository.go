package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/forecast"
	qb "github.com/openforecast/arena/internal/platform/querybuilder"
)

type forecastTableModel struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	PropID      string    `db:"prop_id"`
	Probability float64   `db:"probability"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func forecastFromRow(row forecastTableModel) forecast.Forecast {
	return forecast.Forecast{
		ID:          row.ID,
		UserID:      row.UserID,
		PropID:      row.PropID,
		Probability: row.Probability,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

type ForecastRepository struct {
	db *sqlx.DB
}

func NewForecastRepository(db *sqlx.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

func (r *ForecastRepository) GetByUserAndProp(ctx context.Context, userID, propID string) (forecast.Forecast, bool, error) {
	query, args, err := qb.Select("*").From("forecasts").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("prop_id", propID),
		).
		ToSQL()
	if err != nil {
		return forecast.Forecast{}, false, fmt.Errorf("build get forecast query: %w", err)
	}

	var row forecastTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return forecast.Forecast{}, false, nil
		}
		return forecast.Forecast{}, false, fmt.Errorf("get forecast: %w", err)
	}

	return forecastFromRow(row), true, nil
}

func (r *ForecastRepository) ListByProp(ctx context.Context, propID string) ([]forecast.Forecast, error) {
	query, args, err := qb.Select("*").From("forecasts").
		Where(qb.Eq("prop_id", propID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list forecasts by prop query: %w", err)
	}

	return r.selectForecasts(ctx, query, args)
}

func (r *ForecastRepository) ListByUserAndProps(ctx context.Context, userID string, propIDs []string) ([]forecast.Forecast, error) {
	if len(propIDs) == 0 {
		return []forecast.Forecast{}, nil
	}

	query, args, err := qb.Select("*").From("forecasts").
		Where(
			qb.Eq("user_id", userID),
			qb.InStrings("prop_id", propIDs),
		).
		OrderBy("prop_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list forecasts by user query: %w", err)
	}

	return r.selectForecasts(ctx, query, args)
}

func (r *ForecastRepository) selectForecasts(ctx context.Context, query string, args []any) ([]forecast.Forecast, error) {
	var rows []forecastTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select forecasts: %w", err)
	}

	out := make([]forecast.Forecast, 0, len(rows))
	for _, row := range rows {
		out = append(out, forecastFromRow(row))
	}

	return out, nil
}

func (r *ForecastRepository) Upsert(ctx context.Context, item forecast.Forecast) error {
	query, args, err := qb.InsertInto("forecasts").
		Columns("id", "user_id", "prop_id", "probability", "created_at", "updated_at").
		Values(item.ID, item.UserID, item.PropID, item.Probability, item.CreatedAt, item.UpdatedAt).
		Suffix(
			"ON CONFLICT (user_id, prop_id) DO UPDATE SET probability = ?, updated_at = ?",
			item.Probability, item.UpdatedAt,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert forecast query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert forecast: %w", err)
	}

	return nil
}

func (r *ForecastRepository) Delete(ctx context.Context, userID, propID string) error {
	query, args, err := qb.DeleteFrom("forecasts").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("prop_id", propID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete forecast query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete forecast: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/prop"
	qb "github.com/openforecast/arena/internal/platform/querybuilder"
)

type PropRepository struct {
	db *sqlx.DB
}

func NewPropRepository(db *sqlx.DB) *PropRepository {
	return &PropRepository{db: db}
}

func (r *PropRepository) GetByID(ctx context.Context, propID string) (prop.Prop, bool, error) {
	query, args, err := qb.Select("*").From("props").
		Where(
			qb.Eq("id", propID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return prop.Prop{}, false, fmt.Errorf("build get prop by id query: %w", err)
	}

	var row propTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prop.Prop{}, false, nil
		}
		return prop.Prop{}, false, fmt.Errorf("get prop by id: %w", err)
	}

	return propFromRow(row), true, nil
}

func (r *PropRepository) ListByCompetition(ctx context.Context, competitionID string) ([]prop.Prop, error) {
	query, args, err := qb.Select("*").From("props").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list props by competition query: %w", err)
	}

	return r.selectProps(ctx, query, args)
}

func (r *PropRepository) ListByOwner(ctx context.Context, ownerID string) ([]prop.Prop, error) {
	query, args, err := qb.Select("*").From("props").
		Where(
			qb.Eq("owner_id", ownerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list props by owner query: %w", err)
	}

	return r.selectProps(ctx, query, args)
}

func (r *PropRepository) selectProps(ctx context.Context, query string, args []any) ([]prop.Prop, error) {
	var rows []propTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select props: %w", err)
	}

	out := make([]prop.Prop, 0, len(rows))
	for _, row := range rows {
		out = append(out, propFromRow(row))
	}

	return out, nil
}

func (r *PropRepository) Create(ctx context.Context, item prop.Prop) error {
	query, args, err := qb.InsertInto("props").
		Columns("id", "text", "category_id", "owner_id", "competition_id", "forecasts_due", "resolution_due", "created_at", "updated_at").
		Values(item.ID, item.Text, item.CategoryID, item.OwnerID, item.CompetitionID, item.ForecastsDue, item.ResolutionDue, item.CreatedAt, item.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert prop query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert prop: %w", err)
	}

	return nil
}

func (r *PropRepository) Update(ctx context.Context, item prop.Prop) error {
	query, args, err := qb.Update("props").
		Set("text", item.Text).
		Set("category_id", item.CategoryID).
		Set("forecasts_due", item.ForecastsDue).
		Set("resolution_due", item.ResolutionDue).
		Set("updated_at", item.UpdatedAt).
		Where(
			qb.Eq("id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update prop query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update prop: %w", err)
	}

	return nil
}

func (r *PropRepository) Delete(ctx context.Context, propID string) error {
	query, args, err := qb.Update("props").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", propID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete prop query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete prop: %w", err)
	}

	return nil
}

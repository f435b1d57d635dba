package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/resolution"
	qb "github.com/openforecast/arena/internal/platform/querybuilder"
)

type resolutionTableModel struct {
	ID         string    `db:"id"`
	PropID     string    `db:"prop_id"`
	Outcome    bool      `db:"outcome"`
	Notes      string    `db:"notes"`
	ResolvedBy string    `db:"resolved_by"`
	ResolvedAt time.Time `db:"resolved_at"`
}

func resolutionFromRow(row resolutionTableModel) resolution.Resolution {
	return resolution.Resolution{
		ID:         row.ID,
		PropID:     row.PropID,
		Outcome:    row.Outcome,
		Notes:      row.Notes,
		ResolvedBy: row.ResolvedBy,
		ResolvedAt: row.ResolvedAt,
	}
}

type ResolutionRepository struct {
	db *sqlx.DB
}

func NewResolutionRepository(db *sqlx.DB) *ResolutionRepository {
	return &ResolutionRepository{db: db}
}

func (r *ResolutionRepository) GetByProp(ctx context.Context, propID string) (resolution.Resolution, bool, error) {
	query, args, err := qb.Select("*").From("resolutions").
		Where(qb.Eq("prop_id", propID)).
		ToSQL()
	if err != nil {
		return resolution.Resolution{}, false, fmt.Errorf("build get resolution query: %w", err)
	}

	var row resolutionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return resolution.Resolution{}, false, nil
		}
		return resolution.Resolution{}, false, fmt.Errorf("get resolution: %w", err)
	}

	return resolutionFromRow(row), true, nil
}

func (r *ResolutionRepository) ListByProps(ctx context.Context, propIDs []string) ([]resolution.Resolution, error) {
	if len(propIDs) == 0 {
		return []resolution.Resolution{}, nil
	}

	query, args, err := qb.Select("*").From("resolutions").
		Where(qb.InStrings("prop_id", propIDs)).
		OrderBy("prop_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list resolutions query: %w", err)
	}

	var rows []resolutionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}

	out := make([]resolution.Resolution, 0, len(rows))
	for _, row := range rows {
		out = append(out, resolutionFromRow(row))
	}

	return out, nil
}

func (r *ResolutionRepository) Upsert(ctx context.Context, item resolution.Resolution) error {
	query, args, err := qb.InsertInto("resolutions").
		Columns("id", "prop_id", "outcome", "notes", "resolved_by", "resolved_at").
		Values(item.ID, item.PropID, item.Outcome, item.Notes, item.ResolvedBy, item.ResolvedAt).
		Suffix(
			"ON CONFLICT (prop_id) DO UPDATE SET outcome = ?, notes = ?, resolved_by = ?, resolved_at = ?",
			item.Outcome, item.Notes, item.ResolvedBy, item.ResolvedAt,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert resolution query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert resolution: %w", err)
	}

	return nil
}

func (r *ResolutionRepository) DeleteByProp(ctx context.Context, propID string) error {
	query, args, err := qb.DeleteFrom("resolutions").
		Where(qb.Eq("prop_id", propID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete resolution query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete resolution: %w", err)
	}

	return nil
}

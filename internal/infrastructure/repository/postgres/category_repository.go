package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/category"
	qb "github.com/openforecast/arena/internal/platform/querybuilder"
)

type categoryTableModel struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	query, args, err := qb.Select("id", "name").From("categories").
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]category.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, category.Category{ID: row.ID, Name: row.Name})
	}

	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID string) (category.Category, bool, error) {
	query, args, err := qb.Select("id", "name").From("categories").
		Where(qb.Eq("id", categoryID)).
		ToSQL()
	if err != nil {
		return category.Category{}, false, fmt.Errorf("build get category by id query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Category{}, false, nil
		}
		return category.Category{}, false, fmt.Errorf("get category by id: %w", err)
	}

	return category.Category{ID: row.ID, Name: row.Name}, true, nil
}

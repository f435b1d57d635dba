package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/user"
	qb "github.com/openforecast/arena/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(
			qb.Eq("id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by id query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, userIDs []string) ([]user.User, error) {
	if len(userIDs) == 0 {
		return []user.User{}, nil
	}

	query, args, err := qb.Select("*").From("users").
		Where(
			qb.InStrings("id", userIDs),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users by ids query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users by ids: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}

	return out, nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Username:    row.Username,
		IsAdmin:     row.IsAdmin,
		IsActive:    row.IsActive,
	}
}

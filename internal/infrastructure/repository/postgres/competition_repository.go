package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/competition"
	qb "github.com/openforecast/arena/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition by id query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition by id: %w", err)
	}

	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) GetMembership(ctx context.Context, competitionID, userID string) (competition.Membership, bool, error) {
	query, args, err := qb.Select("*").From("competition_members").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return competition.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Membership{}, false, nil
		}
		return competition.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *CompetitionRepository) ListMemberships(ctx context.Context, competitionID string) ([]competition.Membership, error) {
	query, args, err := qb.Select("*").From("competition_members").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]competition.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}

	return out, nil
}

func (r *CompetitionRepository) UpsertMembership(ctx context.Context, item competition.Membership) error {
	query, args, err := qb.InsertInto("competition_members").
		Columns("competition_id", "user_id", "role", "joined_at").
		Values(item.CompetitionID, item.UserID, string(item.Role), item.JoinedAt).
		Suffix(
			"ON CONFLICT (competition_id, user_id) DO UPDATE SET role = ?",
			string(item.Role),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert membership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert membership: %w", err)
	}

	return nil
}

func (r *CompetitionRepository) DeleteMembership(ctx context.Context, competitionID, userID string) error {
	query, args, err := qb.DeleteFrom("competition_members").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete membership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	return nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/openforecast/arena/internal/domain/scoring"
	qb "github.com/openforecast/arena/internal/platform/querybuilder"
)

type snapshotTableModel struct {
	CompetitionID string    `db:"competition_id"`
	Result        []byte    `db:"result"`
	CalculatedAt  time.Time `db:"calculated_at"`
}

// SnapshotRepository stores one precomputed leaderboard per competition,
// with the ranked result as a jsonb column.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Get(ctx context.Context, competitionID string) (scoring.Snapshot, bool, error) {
	query, args, err := qb.Select("*").From("leaderboard_snapshots").
		Where(qb.Eq("competition_id", competitionID)).
		ToSQL()
	if err != nil {
		return scoring.Snapshot{}, false, fmt.Errorf("build get snapshot query: %w", err)
	}

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Snapshot{}, false, nil
		}
		return scoring.Snapshot{}, false, fmt.Errorf("get snapshot: %w", err)
	}

	var result scoring.Result
	if err := sonic.Unmarshal(row.Result, &result); err != nil {
		return scoring.Snapshot{}, false, fmt.Errorf("decode snapshot result: %w", err)
	}

	return scoring.Snapshot{
		CompetitionID: row.CompetitionID,
		Result:        result,
		CalculatedAt:  row.CalculatedAt,
	}, true, nil
}

func (r *SnapshotRepository) Replace(ctx context.Context, snapshot scoring.Snapshot) error {
	payload, err := sonic.Marshal(snapshot.Result)
	if err != nil {
		return fmt.Errorf("encode snapshot result: %w", err)
	}

	query, args, err := qb.InsertInto("leaderboard_snapshots").
		Columns("competition_id", "result", "calculated_at").
		Values(snapshot.CompetitionID, payload, snapshot.CalculatedAt).
		Suffix(
			"ON CONFLICT (competition_id) DO UPDATE SET result = ?, calculated_at = ?",
			payload, snapshot.CalculatedAt,
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build replace snapshot query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}

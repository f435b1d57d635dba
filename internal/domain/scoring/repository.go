package scoring

import (
	"context"
	"time"
)

// Repository supplies scored rows already filtered by the authorization
// gate at the data-access boundary; the aggregation logic never sees rows
// the viewer is not allowed to see.
type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]ScoredForecast, error)
}

// Snapshot is a persisted leaderboard computed by a refresh run.
type Snapshot struct {
	CompetitionID string
	Result        Result
	CalculatedAt  time.Time
}

type SnapshotRepository interface {
	Get(ctx context.Context, competitionID string) (Snapshot, bool, error)
	Replace(ctx context.Context, snapshot Snapshot) error
}

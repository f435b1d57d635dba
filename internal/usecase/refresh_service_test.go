package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/scoring"
	"github.com/openforecast/arena/internal/infrastructure/repository/memory"
	"github.com/openforecast/arena/internal/platform/logging"
)

// selectiveScoredRepo fails for one competition and serves rows for the rest.
type selectiveScoredRepo struct {
	rows   map[string][]scoring.ScoredForecast
	failID string
}

func (r *selectiveScoredRepo) ListByCompetition(_ context.Context, competitionID string) ([]scoring.ScoredForecast, error) {
	if competitionID == r.failID {
		return nil, errors.New("query timeout")
	}
	return r.rows[competitionID], nil
}

func TestRefreshServiceRefreshAll(t *testing.T) {
	t.Parallel()

	comps := memory.NewCompetitionRepository([]competition.Competition{
		{ID: "cmp-a", Visibility: competition.VisibilityPublic},
		{ID: "cmp-b", Visibility: competition.VisibilityPublic},
	}, nil)
	scored := &selectiveScoredRepo{rows: map[string][]scoring.ScoredForecast{
		"cmp-a": {scoredRow("usr-1", 0.7, true), scoredRow("usr-2", 0.3, true)},
		"cmp-b": {scoredRow("usr-3", 0.5, false)},
	}}
	snapshots := memory.NewSnapshotRepository()

	svc := NewRefreshService(comps, scored, snapshots, nil, logging.NewNop(), 2)

	report, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}
	if report.Total != 2 || report.Success != 2 || report.Failed != 0 {
		t.Fatalf("report = %+v, want Total=2 Success=2 Failed=0", report)
	}

	snap, exists, err := snapshots.Get(context.Background(), "cmp-a")
	if err != nil || !exists {
		t.Fatalf("snapshot cmp-a missing: exists=%v err=%v", exists, err)
	}
	if len(snap.Result.Overall) != 2 {
		t.Errorf("cmp-a Overall users = %d, want 2", len(snap.Result.Overall))
	}
	if snap.CalculatedAt.IsZero() {
		t.Error("CalculatedAt is zero")
	}
}

func TestRefreshServiceToleratesFailures(t *testing.T) {
	t.Parallel()

	comps := memory.NewCompetitionRepository([]competition.Competition{
		{ID: "cmp-bad", Visibility: competition.VisibilityPublic},
		{ID: "cmp-good", Visibility: competition.VisibilityPublic},
	}, nil)
	scored := &selectiveScoredRepo{
		rows:   map[string][]scoring.ScoredForecast{"cmp-good": {scoredRow("usr-1", 0.6, true)}},
		failID: "cmp-bad",
	}
	snapshots := memory.NewSnapshotRepository()

	svc := NewRefreshService(comps, scored, snapshots, nil, logging.NewNop(), 2)

	report, err := svc.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}
	if report.Success != 1 || report.Failed != 1 {
		t.Fatalf("report = %+v, want Success=1 Failed=1", report)
	}

	// Task rows come back sorted by competition id.
	if report.Tasks[0].CompetitionID != "cmp-bad" || report.Tasks[0].Status != "failed" {
		t.Errorf("Tasks[0] = %+v, want cmp-bad failed", report.Tasks[0])
	}
	if report.Tasks[1].CompetitionID != "cmp-good" || report.Tasks[1].Status != "success" {
		t.Errorf("Tasks[1] = %+v, want cmp-good success", report.Tasks[1])
	}

	if _, exists, _ := snapshots.Get(context.Background(), "cmp-bad"); exists {
		t.Error("failed competition left a snapshot")
	}
	if _, exists, _ := snapshots.Get(context.Background(), "cmp-good"); !exists {
		t.Error("successful competition missing its snapshot")
	}
}

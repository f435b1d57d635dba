package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/openforecast/arena/internal/domain/competition"
	"github.com/openforecast/arena/internal/domain/scoring"
	"github.com/openforecast/arena/internal/platform/cache"
	"github.com/openforecast/arena/internal/platform/logging"
)

// RefreshTaskResult records the outcome of one competition's snapshot rebuild.
type RefreshTaskResult struct {
	CompetitionID string        `json:"competitionId"`
	Status        string        `json:"status"`
	Users         int           `json:"users"`
	Duration      time.Duration `json:"duration"`
	Error         string        `json:"error,omitempty"`
}

// RefreshReport summarizes a full leaderboard refresh run.
type RefreshReport struct {
	Total    int                 `json:"total"`
	Success  int                 `json:"success"`
	Failed   int                 `json:"failed"`
	Duration time.Duration       `json:"duration"`
	Tasks    []RefreshTaskResult `json:"tasks"`
}

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
)

// RefreshService rebuilds persisted leaderboard snapshots for every
// competition on a bounded worker pool.
type RefreshService struct {
	compRepo     competition.Repository
	scoredRepo   scoring.Repository
	snapshotRepo scoring.SnapshotRepository
	store        *cache.Store
	logger       *logging.Logger
	maxWorkers   int

	now func() time.Time
}

func NewRefreshService(
	compRepo competition.Repository,
	scoredRepo scoring.Repository,
	snapshotRepo scoring.SnapshotRepository,
	store *cache.Store,
	logger *logging.Logger,
	maxWorkers int,
) *RefreshService {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &RefreshService{
		compRepo:     compRepo,
		scoredRepo:   scoredRepo,
		snapshotRepo: snapshotRepo,
		store:        store,
		logger:       logger,
		maxWorkers:   maxWorkers,
		now:          time.Now,
	}
}

// RefreshAll recomputes and stores a snapshot per competition. One
// competition failing does not stop the run; it is reported per task.
func (s *RefreshService) RefreshAll(ctx context.Context) (RefreshReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshAll")
	defer span.End()

	started := time.Now()
	competitions, err := s.compRepo.List(ctx)
	if err != nil {
		return RefreshReport{}, fmt.Errorf("list competitions: %w", err)
	}

	workerPool, err := ants.NewPool(s.maxWorkers, ants.WithPreAlloc(true))
	if err != nil {
		return RefreshReport{}, fmt.Errorf("%w: create worker pool: %v", ErrDependencyUnavailable, err)
	}
	defer workerPool.Release()

	var (
		wg      sync.WaitGroup
		success atomic.Int64
		failed  atomic.Int64
	)
	tasks := make([]RefreshTaskResult, len(competitions))

	for i, comp := range competitions {
		wg.Add(1)
		submitErr := workerPool.Submit(func() {
			defer wg.Done()
			result := s.refreshCompetition(ctx, comp.ID)
			if result.Status == refreshStatusSuccess {
				success.Add(1)
			} else {
				failed.Add(1)
				s.logger.WarnContext(ctx, "leaderboard refresh failed",
					"competition_id", comp.ID,
					"error", result.Error,
				)
			}
			tasks[i] = result
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			tasks[i] = RefreshTaskResult{
				CompetitionID: comp.ID,
				Status:        refreshStatusFailed,
				Error:         submitErr.Error(),
			}
		}
	}
	wg.Wait()

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CompetitionID < tasks[j].CompetitionID
	})

	report := RefreshReport{
		Total:    len(competitions),
		Success:  int(success.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(started),
		Tasks:    tasks,
	}
	s.logger.InfoContext(ctx, "leaderboard refresh finished",
		"total", report.Total,
		"success", report.Success,
		"failed", report.Failed,
		"duration", report.Duration.String(),
	)
	return report, nil
}

func (s *RefreshService) refreshCompetition(ctx context.Context, competitionID string) RefreshTaskResult {
	started := time.Now()

	rows, err := s.scoredRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return RefreshTaskResult{
			CompetitionID: competitionID,
			Status:        refreshStatusFailed,
			Duration:      time.Since(started),
			Error:         fmt.Errorf("list scored forecasts: %w", err).Error(),
		}
	}

	result := scoring.Aggregate(rows)
	snapshot := scoring.Snapshot{
		CompetitionID: competitionID,
		Result:        result,
		CalculatedAt:  s.now(),
	}
	if err := s.snapshotRepo.Replace(ctx, snapshot); err != nil {
		return RefreshTaskResult{
			CompetitionID: competitionID,
			Status:        refreshStatusFailed,
			Duration:      time.Since(started),
			Error:         fmt.Errorf("replace snapshot: %w", err).Error(),
		}
	}

	if s.store != nil {
		s.store.Delete(ctx, leaderboardCacheKey(competitionID))
	}

	return RefreshTaskResult{
		CompetitionID: competitionID,
		Status:        refreshStatusSuccess,
		Users:         len(result.Overall),
		Duration:      time.Since(started),
	}
}

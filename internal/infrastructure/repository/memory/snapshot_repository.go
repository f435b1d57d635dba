package memory

import (
	"context"
	"sync"

	"github.com/openforecast/arena/internal/domain/scoring"
)

type SnapshotRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.Snapshot
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{items: make(map[string]scoring.Snapshot)}
}

func (r *SnapshotRepository) Get(_ context.Context, competitionID string) (scoring.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[competitionID]
	if !ok {
		return scoring.Snapshot{}, false, nil
	}

	return s, true, nil
}

func (r *SnapshotRepository) Replace(_ context.Context, snapshot scoring.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[snapshot.CompetitionID] = snapshot
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/openforecast/arena/internal/domain/resolution"
)

type ResolutionRepository struct {
	mu    sync.RWMutex
	items map[string]resolution.Resolution
}

func NewResolutionRepository(resolutions []resolution.Resolution) *ResolutionRepository {
	items := make(map[string]resolution.Resolution, len(resolutions))
	for _, res := range resolutions {
		items[res.PropID] = res
	}

	return &ResolutionRepository{items: items}
}

func (r *ResolutionRepository) GetByProp(_ context.Context, propID string) (resolution.Resolution, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[propID]
	if !ok {
		return resolution.Resolution{}, false, nil
	}

	return res, true, nil
}

func (r *ResolutionRepository) ListByProps(_ context.Context, propIDs []string) ([]resolution.Resolution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]resolution.Resolution, 0, len(propIDs))
	for _, id := range propIDs {
		if res, ok := r.items[id]; ok {
			out = append(out, res)
		}
	}

	return out, nil
}

func (r *ResolutionRepository) Upsert(_ context.Context, item resolution.Resolution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.PropID] = item
	return nil
}

func (r *ResolutionRepository) DeleteByProp(_ context.Context, propID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, propID)
	return nil
}

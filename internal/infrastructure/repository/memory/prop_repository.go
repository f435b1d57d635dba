package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/openforecast/arena/internal/domain/prop"
)

type PropRepository struct {
	mu     sync.RWMutex
	items  map[string]prop.Prop
	orders []string
}

func NewPropRepository(props []prop.Prop) *PropRepository {
	items := make(map[string]prop.Prop, len(props))
	orders := make([]string, 0, len(props))

	for _, p := range props {
		items[p.ID] = p
		orders = append(orders, p.ID)
	}

	return &PropRepository{items: items, orders: orders}
}

func (r *PropRepository) GetByID(_ context.Context, propID string) (prop.Prop, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[propID]
	if !ok {
		return prop.Prop{}, false, nil
	}

	return p, true, nil
}

func (r *PropRepository) ListByCompetition(_ context.Context, competitionID string) ([]prop.Prop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prop.Prop, 0)
	for _, id := range r.orders {
		p := r.items[id]
		if p.CompetitionID != nil && *p.CompetitionID == competitionID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PropRepository) ListByOwner(_ context.Context, ownerID string) ([]prop.Prop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prop.Prop, 0)
	for _, id := range r.orders {
		p := r.items[id]
		if p.OwnerID != nil && *p.OwnerID == ownerID {
			out = append(out, p)
		}
	}

	return out, nil
}

func (r *PropRepository) Create(_ context.Context, item prop.Prop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		return fmt.Errorf("prop %s already exists", item.ID)
	}

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}

func (r *PropRepository) Update(_ context.Context, item prop.Prop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("prop %s does not exist", item.ID)
	}

	r.items[item.ID] = item
	return nil
}

func (r *PropRepository) Delete(_ context.Context, propID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[propID]; !ok {
		return nil
	}

	delete(r.items, propID)
	for i, id := range r.orders {
		if id == propID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

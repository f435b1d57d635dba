package memory

import (
	"context"
	"sync"

	"github.com/openforecast/arena/internal/domain/category"
)

type CategoryRepository struct {
	mu     sync.RWMutex
	items  map[string]category.Category
	orders []string
}

func NewCategoryRepository(categories []category.Category) *CategoryRepository {
	items := make(map[string]category.Category, len(categories))
	orders := make([]string, 0, len(categories))

	for _, c := range categories {
		items[c.ID] = c
		orders = append(orders, c.ID)
	}

	return &CategoryRepository{items: items, orders: orders}
}

func (r *CategoryRepository) List(_ context.Context) ([]category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Category, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, categoryID string) (category.Category, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[categoryID]
	if !ok {
		return category.Category{}, false, nil
	}

	return c, true, nil
}

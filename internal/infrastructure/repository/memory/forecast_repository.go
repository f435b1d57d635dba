package memory

import (
	"context"
	"sync"

	"github.com/openforecast/arena/internal/domain/forecast"
)

type forecastKey struct {
	userID string
	propID string
}

type ForecastRepository struct {
	mu     sync.RWMutex
	items  map[forecastKey]forecast.Forecast
	orders []forecastKey
}

func NewForecastRepository(forecasts []forecast.Forecast) *ForecastRepository {
	r := &ForecastRepository{
		items: make(map[forecastKey]forecast.Forecast, len(forecasts)),
	}
	for _, f := range forecasts {
		key := forecastKey{userID: f.UserID, propID: f.PropID}
		r.items[key] = f
		r.orders = append(r.orders, key)
	}

	return r
}

func (r *ForecastRepository) GetByUserAndProp(_ context.Context, userID, propID string) (forecast.Forecast, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.items[forecastKey{userID: userID, propID: propID}]
	if !ok {
		return forecast.Forecast{}, false, nil
	}

	return f, true, nil
}

func (r *ForecastRepository) ListByProp(_ context.Context, propID string) ([]forecast.Forecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]forecast.Forecast, 0)
	for _, key := range r.orders {
		if key.propID == propID {
			out = append(out, r.items[key])
		}
	}

	return out, nil
}

func (r *ForecastRepository) ListByUserAndProps(_ context.Context, userID string, propIDs []string) ([]forecast.Forecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(propIDs))
	for _, id := range propIDs {
		wanted[id] = struct{}{}
	}

	out := make([]forecast.Forecast, 0)
	for _, key := range r.orders {
		if key.userID != userID {
			continue
		}
		if _, ok := wanted[key.propID]; ok {
			out = append(out, r.items[key])
		}
	}

	return out, nil
}

func (r *ForecastRepository) Upsert(_ context.Context, item forecast.Forecast) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := forecastKey{userID: item.UserID, propID: item.PropID}
	if _, ok := r.items[key]; !ok {
		r.orders = append(r.orders, key)
	}
	r.items[key] = item
	return nil
}

func (r *ForecastRepository) Delete(_ context.Context, userID, propID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := forecastKey{userID: userID, propID: propID}
	if _, ok := r.items[key]; !ok {
		return nil
	}

	delete(r.items, key)
	for i, k := range r.orders {
		if k == key {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}

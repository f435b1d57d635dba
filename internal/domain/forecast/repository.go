package forecast

import "context"

type Repository interface {
	GetByUserAndProp(ctx context.Context, userID, propID string) (Forecast, bool, error)
	ListByProp(ctx context.Context, propID string) ([]Forecast, error)
	ListByUserAndProps(ctx context.Context, userID string, propIDs []string) ([]Forecast, error)
	Upsert(ctx context.Context, item Forecast) error
	Delete(ctx context.Context, userID, propID string) error
}

package resolution

import "context"

type Repository interface {
	GetByProp(ctx context.Context, propID string) (Resolution, bool, error)
	ListByProps(ctx context.Context, propIDs []string) ([]Resolution, error)
	Upsert(ctx context.Context, item Resolution) error
	DeleteByProp(ctx context.Context, propID string) error
}

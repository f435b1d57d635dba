package prop

import "context"

type Repository interface {
	GetByID(ctx context.Context, propID string) (Prop, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Prop, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Prop, error)
	Create(ctx context.Context, item Prop) error
	Update(ctx context.Context, item Prop) error
	Delete(ctx context.Context, propID string) error
}

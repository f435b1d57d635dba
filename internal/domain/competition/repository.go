package competition

import "context"

type Repository interface {
	List(ctx context.Context) ([]Competition, error)
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	GetMembership(ctx context.Context, competitionID, userID string) (Membership, bool, error)
	ListMemberships(ctx context.Context, competitionID string) ([]Membership, error)
	UpsertMembership(ctx context.Context, item Membership) error
	DeleteMembership(ctx context.Context, competitionID, userID string) error
}

package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	ListByIDs(ctx context.Context, userIDs []string) ([]User, error)
}

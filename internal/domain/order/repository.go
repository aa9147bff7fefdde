package order

import "context"

// Repository describes order persistence needs from use cases.
//
// There is deliberately no status-update method here: invite-driven status
// changes are written inside the roster repository's transaction, and nothing
// else in this service may write Order.Status.
type Repository interface {
	GetByJoinedRun(ctx context.Context, profileID, joinedRunID string) (Order, bool, error)
	ListByProfile(ctx context.Context, profileID string) ([]Order, error)
	Create(ctx context.Context, o Order) error
}

package court

import "context"

// Repository describes court persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, city string) ([]Court, error)
	GetByID(ctx context.Context, courtID string) (Court, bool, error)
	Create(ctx context.Context, c Court) error
}

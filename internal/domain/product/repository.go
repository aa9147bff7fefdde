package product

import "context"

// Repository describes product persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, productID string) (Product, bool, error)
}

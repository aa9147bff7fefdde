package usecase

import (
	"context"
	"fmt"

	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/product"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// ProductService serves the shop catalog and a profile's order history.
type ProductService struct {
	products product.Repository
	orders   order.Repository
	logger   *logging.Logger
}

func NewProductService(products product.Repository, orders order.Repository, logger *logging.Logger) *ProductService {
	return &ProductService{products: products, orders: orders, logger: logger}
}

func (s *ProductService) ListProducts(ctx context.Context, category string) ([]product.Product, error) {
	ctx, span := startUsecaseSpan(ctx, "ProductService.ListProducts")
	defer span.End()

	products, err := s.products.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (product.Product, error) {
	ctx, span := startUsecaseSpan(ctx, "ProductService.GetProduct")
	defer span.End()

	p, found, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return product.Product{}, fmt.Errorf("get product: %w", err)
	}
	if !found {
		return product.Product{}, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	return p, nil
}

// ListMyOrders returns the caller's orders, newest first. Run-join orders
// and shop orders share the same ledger.
func (s *ProductService) ListMyOrders(ctx context.Context, profileID string) ([]order.Order, error) {
	ctx, span := startUsecaseSpan(ctx, "ProductService.ListMyOrders")
	defer span.End()

	orders, err := s.orders.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/courtside/hooprun/internal/domain/product"
)

type ProductRepository struct {
	mu    sync.RWMutex
	items map[string]product.Product
	order []string
}

func NewProductRepository(products []product.Product) *ProductRepository {
	items := make(map[string]product.Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		items[p.ID] = p
		order = append(order, p.ID)
	}

	return &ProductRepository{items: items, order: order}
}

func (r *ProductRepository) List(_ context.Context, category string) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.items[id]
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *ProductRepository) GetByID(_ context.Context, productID string) (product.Product, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[productID]
	if !ok {
		return product.Product{}, false, nil
	}

	return p, true, nil
}

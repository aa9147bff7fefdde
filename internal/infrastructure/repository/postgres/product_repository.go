package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/hooprun/internal/domain/product"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Category    string     `db:"category"`
	PriceCents  int64      `db:"price_cents"`
	ImageURL    string     `db:"image_url"`
	InStock     bool       `db:"in_stock"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m productTableModel) toDomain() product.Product {
	return product.Product{
		ID:          m.PublicID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		PriceCents:  m.PriceCents,
		ImageURL:    m.ImageURL,
		InStock:     m.InStock,
	}
}

const productColumns = `id, public_id, name, description, category, price_cents, image_url, in_stock, created_at, updated_at, deleted_at`

func (r *ProductRepository) List(ctx context.Context, category string) ([]product.Product, error) {
	query := `
SELECT ` + productColumns + `
FROM products
WHERE deleted_at IS NULL`
	args := []any{}
	if category != "" {
		query += `
  AND LOWER(category) = LOWER($1)`
		args = append(args, category)
	}
	query += `
ORDER BY name, id`

	var rows []productTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]product.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID string) (product.Product, bool, error) {
	query := `
SELECT ` + productColumns + `
FROM products
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row productTableModel
	if err := r.db.GetContext(ctx, &row, query, productID); err != nil {
		if isNotFound(err) {
			return product.Product{}, false, nil
		}
		return product.Product{}, false, fmt.Errorf("get product: %w", err)
	}

	return row.toDomain(), true, nil
}

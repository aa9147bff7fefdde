package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/hooprun/internal/domain/order"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, public_id, profile_id, run_id, joined_run_id, status, amount_cents, created_at, updated_at, deleted_at`

func (r *OrderRepository) GetByJoinedRun(ctx context.Context, profileID, joinedRunID string) (order.Order, bool, error) {
	query := `
SELECT ` + orderColumns + `
FROM orders
WHERE profile_id = $1
  AND joined_run_id = $2
  AND deleted_at IS NULL`

	var row orderTableModel
	if err := r.db.GetContext(ctx, &row, query, profileID, joinedRunID); err != nil {
		if isNotFound(err) {
			return order.Order{}, false, nil
		}
		return order.Order{}, false, fmt.Errorf("get order by joined run: %w", err)
	}

	o, err := row.toDomain()
	if err != nil {
		return order.Order{}, false, err
	}

	return o, true, nil
}

func (r *OrderRepository) ListByProfile(ctx context.Context, profileID string) ([]order.Order, error) {
	query := `
SELECT ` + orderColumns + `
FROM orders
WHERE profile_id = $1
  AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC`

	var rows []orderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, profileID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, nil
}

func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	const query = `
INSERT INTO orders (public_id, profile_id, run_id, joined_run_id, status, amount_cents)
VALUES (:public_id, :profile_id, :run_id, :joined_run_id, :status, :amount_cents)`

	args := map[string]any{
		"public_id":     o.ID,
		"profile_id":    o.ProfileID,
		"run_id":        o.RunID,
		"joined_run_id": o.JoinedRunID,
		"status":        string(o.Status),
		"amount_cents":  o.AmountCents,
	}
	insertSQL, insertArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind insert order query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

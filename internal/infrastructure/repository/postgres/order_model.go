package postgres

import (
	"fmt"
	"time"

	"github.com/courtside/hooprun/internal/domain/order"
)

type orderTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	ProfileID   string     `db:"profile_id"`
	RunID       string     `db:"run_id"`
	JoinedRunID string     `db:"joined_run_id"`
	Status      string     `db:"status"`
	AmountCents int64      `db:"amount_cents"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m orderTableModel) toDomain() (order.Order, error) {
	status, err := order.ParseStatus(m.Status)
	if err != nil {
		return order.Order{}, fmt.Errorf("order %s: %w", m.PublicID, err)
	}

	return order.Order{
		ID:          m.PublicID,
		ProfileID:   m.ProfileID,
		RunID:       m.RunID,
		JoinedRunID: m.JoinedRunID,
		Status:      status,
		AmountCents: m.AmountCents,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

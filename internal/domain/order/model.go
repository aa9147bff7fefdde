package order

import (
	"fmt"
	"time"
)

// Status is the financial state of an order. For orders created by a paid
// run join, status is derived from the joined run's invite status and is
// written only by the roster transaction; payment webhooks own the rest.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusRefund    Status = "Refund"
	StatusCancelled Status = "Cancelled"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusCompleted, StatusRefund, StatusCancelled:
		return Status(raw), nil
	default:
		return "", fmt.Errorf("unknown order status %q", raw)
	}
}

// Order tracks payment for a paid run join.
type Order struct {
	ID          string
	ProfileID   string
	RunID       string
	JoinedRunID string
	Status      Status
	AmountCents int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id is required")
	}
	if o.ProfileID == "" {
		return fmt.Errorf("order profile id is required")
	}
	if o.RunID == "" {
		return fmt.Errorf("order run id is required")
	}
	if o.JoinedRunID == "" {
		return fmt.Errorf("order joined run id is required")
	}
	if o.AmountCents <= 0 {
		return fmt.Errorf("order amount must be positive")
	}

	return nil
}

package run

import (
	"context"
	"time"
)

// Repository describes run persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, runID string) (Run, bool, error)
	List(ctx context.Context, filter Filter) ([]Run, error)
	Create(ctx context.Context, r Run) error
	Update(ctx context.Context, r Run) error
	// MarkCompletedBefore flips Active runs whose end time is before the
	// cutoff to Completed and returns how many rows changed.
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

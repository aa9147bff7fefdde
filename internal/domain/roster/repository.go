package roster

import (
	"context"
	"errors"

	"github.com/courtside/hooprun/internal/domain/order"
)

// ErrDuplicate is returned by Create when a record for the (profile, run)
// pair already exists. The storage uniqueness constraint is the final arbiter
// under concurrent invites.
var ErrDuplicate = errors.New("joined run already exists for profile and run")

// Repository describes joined-run persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, profileID, joinedRunID string) (JoinedRun, bool, error)
	GetByProfileAndRun(ctx context.Context, profileID, runID string) (JoinedRun, bool, error)
	ExistsByProfileAndRun(ctx context.Context, profileID, runID string) (bool, error)
	Create(ctx context.Context, j JoinedRun) error

	// UpdateStatus writes the invite status and, when orderStatus is non-nil,
	// the linked order's status in a single transaction. A missing order row
	// is a silent no-op; a failed order write rolls back the status write.
	// Returns false when no record matches (profileID, joinedRunID).
	UpdateStatus(ctx context.Context, profileID, joinedRunID string, status InviteStatus, orderStatus *order.Status) (bool, error)

	// UpdatePresence flips the attendance flag. Returns false when no record
	// matches.
	UpdatePresence(ctx context.Context, profileID, joinedRunID string, present bool) (bool, error)

	// DeleteByProfileAndRun removes the pair's record and, in the same
	// write, voids its order if that order is still Pending. Returns false
	// when there was nothing to remove; that is not an error.
	DeleteByProfileAndRun(ctx context.Context, profileID, runID string) (bool, error)

	// DeleteByRun removes every record of a run, voiding each still
	// Pending order the same way.
	DeleteByRun(ctx context.Context, runID string) error

	ListByRun(ctx context.Context, runID string) ([]JoinedRun, error)

	// CountsByRuns buckets every invite of the given runs with one grouped
	// query, regardless of how many runs are asked for.
	CountsByRuns(ctx context.Context, runIDs []string) (map[string]Counts, error)
}

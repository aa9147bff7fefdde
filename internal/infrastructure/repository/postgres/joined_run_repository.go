package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/roster"
)

type JoinedRunRepository struct {
	db *sqlx.DB
}

func NewJoinedRunRepository(db *sqlx.DB) *JoinedRunRepository {
	return &JoinedRunRepository{db: db}
}

const joinedRunColumns = `id, public_id, profile_id, run_id, invited_at, status, present, join_type, squad_id, created_at, updated_at, deleted_at`

func (r *JoinedRunRepository) GetByID(ctx context.Context, profileID, joinedRunID string) (roster.JoinedRun, bool, error) {
	query := `
SELECT ` + joinedRunColumns + `
FROM joined_runs
WHERE public_id = $1
  AND profile_id = $2
  AND deleted_at IS NULL`

	var row joinedRunTableModel
	if err := r.db.GetContext(ctx, &row, query, joinedRunID, profileID); err != nil {
		if isNotFound(err) {
			return roster.JoinedRun{}, false, nil
		}
		return roster.JoinedRun{}, false, fmt.Errorf("get joined run: %w", err)
	}

	j, err := row.toDomain()
	if err != nil {
		return roster.JoinedRun{}, false, err
	}

	return j, true, nil
}

func (r *JoinedRunRepository) GetByProfileAndRun(ctx context.Context, profileID, runID string) (roster.JoinedRun, bool, error) {
	query := `
SELECT ` + joinedRunColumns + `
FROM joined_runs
WHERE profile_id = $1
  AND run_id = $2
  AND deleted_at IS NULL`

	var row joinedRunTableModel
	if err := r.db.GetContext(ctx, &row, query, profileID, runID); err != nil {
		if isNotFound(err) {
			return roster.JoinedRun{}, false, nil
		}
		return roster.JoinedRun{}, false, fmt.Errorf("get joined run by pair: %w", err)
	}

	j, err := row.toDomain()
	if err != nil {
		return roster.JoinedRun{}, false, err
	}

	return j, true, nil
}

func (r *JoinedRunRepository) ExistsByProfileAndRun(ctx context.Context, profileID, runID string) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1
	FROM joined_runs
	WHERE profile_id = $1
	  AND run_id = $2
	  AND deleted_at IS NULL
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, profileID, runID); err != nil {
		return false, fmt.Errorf("check joined run existence: %w", err)
	}

	return exists, nil
}

func (r *JoinedRunRepository) Create(ctx context.Context, j roster.JoinedRun) error {
	const query = `
INSERT INTO joined_runs (public_id, profile_id, run_id, invited_at, status, present, join_type, squad_id)
VALUES (:public_id, :profile_id, :run_id, :invited_at, :status, :present, :join_type, :squad_id)`

	args := map[string]any{
		"public_id":  j.ID,
		"profile_id": j.ProfileID,
		"run_id":     j.RunID,
		"invited_at": j.InvitedAt,
		"status":     j.Status.String(),
		"present":    j.Present,
		"join_type":  string(j.Type),
		"squad_id":   nullString(j.SquadID),
	}
	insertSQL, insertArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind insert joined run query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		if isDuplicateConstraint(err) {
			return roster.ErrDuplicate
		}
		return fmt.Errorf("insert joined run: %w", err)
	}

	return nil
}

// UpdateStatus writes the invite status and, when orderStatus is set, the
// linked order's status inside one transaction. A paid-run answer can never
// land without its order change and vice versa.
func (r *JoinedRunRepository) UpdateStatus(ctx context.Context, profileID, joinedRunID string, status roster.InviteStatus, orderStatus *order.Status) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for status update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const statusQuery = `
UPDATE joined_runs
SET status = $1,
    updated_at = NOW()
WHERE public_id = $2
  AND profile_id = $3
  AND deleted_at IS NULL`

	res, err := tx.ExecContext(ctx, statusQuery, status.String(), joinedRunID, profileID)
	if err != nil {
		return false, fmt.Errorf("update joined run status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count status update rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if orderStatus != nil {
		// Free runs have no order row; zero rows here is fine.
		const orderQuery = `
UPDATE orders
SET status = $1,
    updated_at = NOW()
WHERE joined_run_id = $2
  AND profile_id = $3
  AND deleted_at IS NULL`

		if _, err := tx.ExecContext(ctx, orderQuery, string(*orderStatus), joinedRunID, profileID); err != nil {
			return false, fmt.Errorf("update linked order status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit status update: %w", err)
	}

	return true, nil
}

func (r *JoinedRunRepository) UpdatePresence(ctx context.Context, profileID, joinedRunID string, present bool) (bool, error) {
	const query = `
UPDATE joined_runs
SET present = $1,
    updated_at = NOW()
WHERE public_id = $2
  AND profile_id = $3
  AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, present, joinedRunID, profileID)
	if err != nil {
		return false, fmt.Errorf("update presence: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count presence update rows: %w", err)
	}

	return affected > 0, nil
}

// DeleteByProfileAndRun soft-deletes the pair's roster record and, in the
// same transaction, voids its order if it is still Pending. An order that
// reached Completed or Refund already carries money state and is left alone.
func (r *JoinedRunRepository) DeleteByProfileAndRun(ctx context.Context, profileID, runID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for roster delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const deleteQuery = `
UPDATE joined_runs
SET deleted_at = NOW(),
    updated_at = NOW()
WHERE profile_id = $1
  AND run_id = $2
  AND deleted_at IS NULL
RETURNING public_id`

	var joinedRunID string
	if err := tx.GetContext(ctx, &joinedRunID, deleteQuery, profileID, runID); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete joined run: %w", err)
	}

	const voidQuery = `
UPDATE orders
SET status = $1,
    deleted_at = NOW(),
    updated_at = NOW()
WHERE joined_run_id = $2
  AND profile_id = $3
  AND status = $4
  AND deleted_at IS NULL`

	if _, err := tx.ExecContext(ctx, voidQuery, string(order.StatusCancelled), joinedRunID, profileID, string(order.StatusPending)); err != nil {
		return false, fmt.Errorf("void pending order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit roster delete: %w", err)
	}

	return true, nil
}

// DeleteByRun soft-deletes every roster record of a run and voids the still
// Pending orders they opened, in one transaction.
func (r *JoinedRunRepository) DeleteByRun(ctx context.Context, runID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for roster clear: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const voidQuery = `
UPDATE orders
SET status = $1,
    deleted_at = NOW(),
    updated_at = NOW()
WHERE status = $2
  AND deleted_at IS NULL
  AND joined_run_id IN (
	SELECT public_id
	FROM joined_runs
	WHERE run_id = $3
	  AND deleted_at IS NULL
)`

	if _, err := tx.ExecContext(ctx, voidQuery, string(order.StatusCancelled), string(order.StatusPending), runID); err != nil {
		return fmt.Errorf("void pending orders: %w", err)
	}

	const deleteQuery = `
UPDATE joined_runs
SET deleted_at = NOW(),
    updated_at = NOW()
WHERE run_id = $1
  AND deleted_at IS NULL`

	if _, err := tx.ExecContext(ctx, deleteQuery, runID); err != nil {
		return fmt.Errorf("delete run roster: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster clear: %w", err)
	}

	return nil
}

func (r *JoinedRunRepository) ListByRun(ctx context.Context, runID string) ([]roster.JoinedRun, error) {
	query := `
SELECT ` + joinedRunColumns + `
FROM joined_runs
WHERE run_id = $1
  AND deleted_at IS NULL
ORDER BY invited_at, id`

	var rows []joinedRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, runID); err != nil {
		return nil, fmt.Errorf("list run roster: %w", err)
	}

	out := make([]roster.JoinedRun, 0, len(rows))
	for _, row := range rows {
		j, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}

	return out, nil
}

// CountsByRuns buckets every invite of the given runs with one grouped
// query. Refund rows are excluded by the bucket expressions themselves.
func (r *JoinedRunRepository) CountsByRuns(ctx context.Context, runIDs []string) (map[string]roster.Counts, error) {
	out := make(map[string]roster.Counts, len(runIDs))
	for _, id := range runIDs {
		out[id] = roster.Counts{}
	}
	if len(runIDs) == 0 {
		return out, nil
	}

	const query = `
SELECT run_id,
       COUNT(*) FILTER (WHERE status IN ($1, $2)) AS accepted,
       COUNT(*) FILTER (WHERE status = $3) AS declined,
       COUNT(*) FILTER (WHERE status = $4) AS undecided
FROM joined_runs
WHERE run_id = ANY($5)
  AND deleted_at IS NULL
GROUP BY run_id`

	var rows []struct {
		RunID     string `db:"run_id"`
		Accepted  int    `db:"accepted"`
		Declined  int    `db:"declined"`
		Undecided int    `db:"undecided"`
	}
	err := r.db.SelectContext(ctx, &rows, query,
		roster.InviteAccepted.String(),
		roster.InviteAcceptedPending.String(),
		roster.InviteDeclined.String(),
		roster.InviteUndecided.String(),
		pq.Array(runIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("count run rosters: %w", err)
	}

	for _, row := range rows {
		out[row.RunID] = roster.Counts{
			Accepted:  row.Accepted,
			Declined:  row.Declined,
			Undecided: row.Undecided,
		}
	}

	return out, nil
}

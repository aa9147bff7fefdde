package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/hooprun/internal/domain/run"
	"github.com/courtside/hooprun/internal/platform/querybuilder"
)

type RunRepository struct {
	db *sqlx.DB
}

func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

const runColumns = `id, public_id, host_profile_id, court_id, starts_at, ends_at, player_limit, skill_level, team_type, cost_cents, status, created_at, updated_at, deleted_at`

func (r *RunRepository) GetByID(ctx context.Context, runID string) (run.Run, bool, error) {
	query := `
SELECT ` + runColumns + `
FROM runs
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row runTableModel
	if err := r.db.GetContext(ctx, &row, query, runID); err != nil {
		if isNotFound(err) {
			return run.Run{}, false, nil
		}
		return run.Run{}, false, fmt.Errorf("get run: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return run.Run{}, false, err
	}

	return out, true, nil
}

func (r *RunRepository) List(ctx context.Context, filter run.Filter) ([]run.Run, error) {
	conditions := []querybuilder.Condition{querybuilder.IsNull("deleted_at")}
	if filter.CourtID != "" {
		conditions = append(conditions, querybuilder.Eq("court_id", filter.CourtID))
	}
	if filter.HostProfileID != "" {
		conditions = append(conditions, querybuilder.Eq("host_profile_id", filter.HostProfileID))
	}
	if filter.SkillLevel != "" {
		conditions = append(conditions, querybuilder.Eq("skill_level", filter.SkillLevel))
	}
	if filter.Status != "" {
		conditions = append(conditions, querybuilder.Eq("status", string(filter.Status)))
	}
	if !filter.StartsAfter.IsZero() {
		conditions = append(conditions, querybuilder.Gte("starts_at", filter.StartsAfter))
	}
	if !filter.StartsBefore.IsZero() {
		conditions = append(conditions, querybuilder.Lte("starts_at", filter.StartsBefore))
	}

	builder := querybuilder.Select(runColumns).
		From("runs").
		Where(conditions...).
		OrderBy("starts_at", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build run list query: %w", err)
	}

	var rows []runTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	out := make([]run.Run, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *RunRepository) Create(ctx context.Context, item run.Run) error {
	const query = `
INSERT INTO runs (public_id, host_profile_id, court_id, starts_at, ends_at, player_limit, skill_level, team_type, cost_cents, status)
VALUES (:public_id, :host_profile_id, :court_id, :starts_at, :ends_at, :player_limit, :skill_level, :team_type, :cost_cents, :status)`

	insertSQL, insertArgs, err := sqlx.Named(query, runArgs(item))
	if err != nil {
		return fmt.Errorf("bind insert run query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

func (r *RunRepository) Update(ctx context.Context, item run.Run) error {
	const query = `
UPDATE runs
SET starts_at = :starts_at,
    ends_at = :ends_at,
    player_limit = :player_limit,
    skill_level = :skill_level,
    team_type = :team_type,
    cost_cents = :cost_cents,
    status = :status,
    updated_at = NOW()
WHERE public_id = :public_id
  AND deleted_at IS NULL`

	updateSQL, updateArgs, err := sqlx.Named(query, runArgs(item))
	if err != nil {
		return fmt.Errorf("bind update run query: %w", err)
	}
	updateSQL = r.db.Rebind(updateSQL)

	if _, err := r.db.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	return nil
}

func runArgs(item run.Run) map[string]any {
	var endsAt *time.Time
	if !item.EndsAt.IsZero() {
		endsAt = &item.EndsAt
	}

	return map[string]any{
		"public_id":       item.ID,
		"host_profile_id": item.HostProfileID,
		"court_id":        item.CourtID,
		"starts_at":       item.StartsAt,
		"ends_at":         endsAt,
		"player_limit":    item.PlayerLimit,
		"skill_level":     item.SkillLevel,
		"team_type":       item.TeamType,
		"cost_cents":      item.CostCents,
		"status":          string(item.Status),
	}
}

func (r *RunRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `
UPDATE runs
SET status = $1,
    updated_at = NOW()
WHERE status = $2
  AND COALESCE(ends_at, starts_at) < $3
  AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, string(run.StatusCompleted), string(run.StatusActive), cutoff)
	if err != nil {
		return 0, fmt.Errorf("mark runs completed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count completed runs: %w", err)
	}

	return int(affected), nil
}

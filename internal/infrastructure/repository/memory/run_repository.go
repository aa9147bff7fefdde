package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/courtside/hooprun/internal/domain/run"
)

type RunRepository struct {
	mu    sync.RWMutex
	items map[string]run.Run
}

func NewRunRepository(runs []run.Run) *RunRepository {
	items := make(map[string]run.Run, len(runs))
	for _, r := range runs {
		items[r.ID] = r
	}

	return &RunRepository{items: items}
}

func (r *RunRepository) GetByID(_ context.Context, runID string) (run.Run, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[runID]
	if !ok {
		return run.Run{}, false, nil
	}

	return item, true, nil
}

func (r *RunRepository) List(_ context.Context, filter run.Filter) ([]run.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]run.Run, 0, len(r.items))
	for _, item := range r.items {
		if !matchesFilter(item, filter) {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func matchesFilter(item run.Run, filter run.Filter) bool {
	if filter.CourtID != "" && item.CourtID != filter.CourtID {
		return false
	}
	if filter.HostProfileID != "" && item.HostProfileID != filter.HostProfileID {
		return false
	}
	if filter.SkillLevel != "" && item.SkillLevel != filter.SkillLevel {
		return false
	}
	if filter.Status != "" && item.Status != filter.Status {
		return false
	}
	if !filter.StartsAfter.IsZero() && item.StartsAt.Before(filter.StartsAfter) {
		return false
	}
	if !filter.StartsBefore.IsZero() && item.StartsAt.After(filter.StartsBefore) {
		return false
	}

	return true
}

func (r *RunRepository) Create(_ context.Context, item run.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item

	return nil
}

func (r *RunRepository) Update(_ context.Context, item run.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item

	return nil
}

func (r *RunRepository) MarkCompletedBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for id, item := range r.items {
		if item.Status != run.StatusActive {
			continue
		}
		end := item.EndsAt
		if end.IsZero() {
			end = item.StartsAt
		}
		if end.Before(cutoff) {
			item.Status = run.StatusCompleted
			r.items[id] = item
			changed++
		}
	}

	return changed, nil
}

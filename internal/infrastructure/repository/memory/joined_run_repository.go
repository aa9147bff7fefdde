package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/roster"
)

// JoinedRunRepository keeps roster records in memory. It holds a reference
// to the order repository so UpdateStatus can apply the invite and order
// writes under one lock, mirroring the SQL backend's transaction.
type JoinedRunRepository struct {
	mu     sync.RWMutex
	items  map[string]roster.JoinedRun
	byPair map[string]string // profileID+"\x00"+runID -> joined run id
	orders *OrderRepository

	// failOrderWrite, when set, makes the next order-bearing UpdateStatus
	// fail before any mutation. Tests use it to prove the invite status is
	// not written when the order write cannot be.
	failOrderWrite error
}

func NewJoinedRunRepository(orders *OrderRepository, joined []roster.JoinedRun) *JoinedRunRepository {
	r := &JoinedRunRepository{
		items:  make(map[string]roster.JoinedRun, len(joined)),
		byPair: make(map[string]string, len(joined)),
		orders: orders,
	}
	for _, j := range joined {
		r.items[j.ID] = j
		r.byPair[pairKey(j.ProfileID, j.RunID)] = j.ID
	}

	return r
}

func pairKey(profileID, runID string) string {
	return profileID + "\x00" + runID
}

// FailNextOrderWrite arms a one-shot failure for the next UpdateStatus call
// that carries an order status.
func (r *JoinedRunRepository) FailNextOrderWrite(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failOrderWrite = err
}

func (r *JoinedRunRepository) GetByID(_ context.Context, profileID, joinedRunID string) (roster.JoinedRun, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.items[joinedRunID]
	if !ok || j.ProfileID != profileID {
		return roster.JoinedRun{}, false, nil
	}

	return j, true, nil
}

func (r *JoinedRunRepository) GetByProfileAndRun(_ context.Context, profileID, runID string) (roster.JoinedRun, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[pairKey(profileID, runID)]
	if !ok {
		return roster.JoinedRun{}, false, nil
	}

	return r.items[id], true, nil
}

func (r *JoinedRunRepository) ExistsByProfileAndRun(_ context.Context, profileID, runID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byPair[pairKey(profileID, runID)]

	return ok, nil
}

func (r *JoinedRunRepository) Create(_ context.Context, j roster.JoinedRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(j.ProfileID, j.RunID)
	if _, ok := r.byPair[key]; ok {
		return roster.ErrDuplicate
	}

	r.items[j.ID] = j
	r.byPair[key] = j.ID

	return nil
}

func (r *JoinedRunRepository) UpdateStatus(_ context.Context, profileID, joinedRunID string, status roster.InviteStatus, orderStatus *order.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[joinedRunID]
	if !ok || j.ProfileID != profileID {
		return false, nil
	}

	if orderStatus != nil {
		if r.failOrderWrite != nil {
			err := r.failOrderWrite
			r.failOrderWrite = nil
			return false, err
		}
		// A join with no order row (free run) is a silent no-op.
		r.orders.setStatusByJoinedRun(profileID, joinedRunID, *orderStatus)
	}

	j.Status = status
	r.items[joinedRunID] = j

	return true, nil
}

func (r *JoinedRunRepository) UpdatePresence(_ context.Context, profileID, joinedRunID string, present bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.items[joinedRunID]
	if !ok || j.ProfileID != profileID {
		return false, nil
	}

	j.Present = present
	r.items[joinedRunID] = j

	return true, nil
}

func (r *JoinedRunRepository) DeleteByProfileAndRun(_ context.Context, profileID, runID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(profileID, runID)
	id, ok := r.byPair[key]
	if !ok {
		return false, nil
	}

	delete(r.items, id)
	delete(r.byPair, key)
	// A removal before any payment state change takes its Pending order
	// with it, like the SQL backend's transaction does.
	r.orders.voidPendingByJoinedRun(profileID, id)

	return true, nil
}

func (r *JoinedRunRepository) DeleteByRun(_ context.Context, runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, j := range r.items {
		if j.RunID == runID {
			delete(r.items, id)
			delete(r.byPair, pairKey(j.ProfileID, j.RunID))
			r.orders.voidPendingByJoinedRun(j.ProfileID, id)
		}
	}

	return nil
}

func (r *JoinedRunRepository) ListByRun(_ context.Context, runID string) ([]roster.JoinedRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.JoinedRun, 0)
	for _, j := range r.items {
		if j.RunID == runID {
			out = append(out, j)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].InvitedAt.Before(out[j].InvitedAt) })

	return out, nil
}

func (r *JoinedRunRepository) CountsByRuns(_ context.Context, runIDs []string) (map[string]roster.Counts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(runIDs))
	out := make(map[string]roster.Counts, len(runIDs))
	for _, id := range runIDs {
		wanted[id] = true
		out[id] = roster.Counts{}
	}

	for _, j := range r.items {
		if !wanted[j.RunID] {
			continue
		}
		c := out[j.RunID]
		c.Add(j.Status)
		out[j.RunID] = c
	}

	return out, nil
}

var _ roster.Repository = (*JoinedRunRepository)(nil)

// ErrOrderWriteFailed is a canned failure for FailNextOrderWrite.
var ErrOrderWriteFailed = errors.New("order write failed")

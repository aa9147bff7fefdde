package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/courtside/hooprun/internal/domain/order"
)

type OrderRepository struct {
	mu    sync.RWMutex
	items map[string]order.Order

	// statusWrites counts status mutations applied through the roster
	// transaction. Tests assert on it to prove declined or undecided
	// transitions never touch orders.
	statusWrites int
}

func NewOrderRepository(orders []order.Order) *OrderRepository {
	items := make(map[string]order.Order, len(orders))
	for _, o := range orders {
		items[o.ID] = o
	}

	return &OrderRepository{items: items}
}

func (r *OrderRepository) GetByJoinedRun(_ context.Context, profileID, joinedRunID string) (order.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.items {
		if o.ProfileID == profileID && o.JoinedRunID == joinedRunID {
			return o, true, nil
		}
	}

	return order.Order{}, false, nil
}

func (r *OrderRepository) ListByProfile(_ context.Context, profileID string) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]order.Order, 0)
	for _, o := range r.items {
		if o.ProfileID == profileID {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *OrderRepository) Create(_ context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[o.ID] = o

	return nil
}

// setStatusByJoinedRun is called by the roster repository while holding its
// own lock, standing in for the shared transaction of the SQL backend.
func (r *OrderRepository) setStatusByJoinedRun(profileID, joinedRunID string, status order.Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, o := range r.items {
		if o.ProfileID == profileID && o.JoinedRunID == joinedRunID {
			o.Status = status
			r.items[id] = o
			r.statusWrites++
			return true
		}
	}

	return false
}

// voidPendingByJoinedRun drops the pair's order if it is still Pending,
// standing in for the SQL backend's cancel-and-soft-delete. Orders that
// already carry money state are left alone.
func (r *OrderRepository) voidPendingByJoinedRun(profileID, joinedRunID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, o := range r.items {
		if o.ProfileID == profileID && o.JoinedRunID == joinedRunID && o.Status == order.StatusPending {
			delete(r.items, id)
			return
		}
	}
}

// StatusWrites reports how many order-status mutations the roster
// transaction has applied.
func (r *OrderRepository) StatusWrites() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.statusWrites
}

package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/courtside/hooprun/internal/domain/court"
)

type CourtRepository struct {
	mu    sync.RWMutex
	items map[string]court.Court
	order []string
}

func NewCourtRepository(courts []court.Court) *CourtRepository {
	items := make(map[string]court.Court, len(courts))
	order := make([]string, 0, len(courts))
	for _, c := range courts {
		items[c.ID] = c
		order = append(order, c.ID)
	}

	return &CourtRepository{items: items, order: order}
}

func (r *CourtRepository) List(_ context.Context, city string) ([]court.Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]court.Court, 0, len(r.order))
	for _, id := range r.order {
		c := r.items[id]
		if city != "" && !strings.EqualFold(c.City, city) {
			continue
		}
		out = append(out, c)
	}

	return out, nil
}

func (r *CourtRepository) GetByID(_ context.Context, courtID string) (court.Court, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[courtID]
	if !ok {
		return court.Court{}, false, nil
	}

	return c, true, nil
}

func (r *CourtRepository) Create(_ context.Context, c court.Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[c.ID] = c
	r.order = append(r.order, c.ID)

	return nil
}

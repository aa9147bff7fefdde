package memory

import (
	"context"
	"sync"

	"github.com/courtside/hooprun/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
}

func NewProfileRepository(profiles []profile.Profile) *ProfileRepository {
	items := make(map[string]profile.Profile, len(profiles))
	for _, p := range profiles {
		items[p.ID] = p
	}

	return &ProfileRepository{items: items}
}

func (r *ProfileRepository) GetByID(_ context.Context, profileID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[profileID]
	if !ok {
		return profile.Profile{}, false, nil
	}

	return p, true, nil
}

func (r *ProfileRepository) GetDisplayByIDs(_ context.Context, profileIDs []string) (map[string]profile.Display, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]profile.Display, len(profileIDs))
	for _, pid := range profileIDs {
		if p, ok := r.items[pid]; ok {
			out[pid] = p.AsDisplay()
		}
	}

	return out, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p

	return nil
}

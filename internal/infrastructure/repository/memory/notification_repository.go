package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/courtside/hooprun/internal/domain/notification"
)

type NotificationRepository struct {
	mu    sync.RWMutex
	items map[string]notification.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{items: make(map[string]notification.Notification)}
}

func (r *NotificationRepository) Create(_ context.Context, n notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[n.ID] = n

	return nil
}

func (r *NotificationRepository) ListByProfile(_ context.Context, profileID string, limit int) ([]notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notification.Notification, 0)
	for _, n := range r.items {
		if n.ProfileID == profileID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, profileID, notificationID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.items[notificationID]
	if !ok || n.ProfileID != profileID {
		return false, nil
	}

	n.Read = true
	r.items[notificationID] = n

	return true, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, profileID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.items {
		if n.ProfileID == profileID && !n.Read {
			count++
		}
	}

	return count, nil
}

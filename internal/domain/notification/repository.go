package notification

import "context"

// Repository describes notification persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, n Notification) error
	ListByProfile(ctx context.Context, profileID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, profileID, notificationID string) (bool, error)
	CountUnread(ctx context.Context, profileID string) (int, error)
}

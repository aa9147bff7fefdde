package usecase

import (
	"context"
	"fmt"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// NotificationService is the read side of notifications; the dispatcher is
// the write side.
type NotificationService struct {
	notifications notification.Repository
	logger        *logging.Logger
}

func NewNotificationService(notifications notification.Repository, logger *logging.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

const defaultNotificationLimit = 50

func (s *NotificationService) ListMine(ctx context.Context, profileID string, limit int) ([]notification.Notification, error) {
	ctx, span := startUsecaseSpan(ctx, "NotificationService.ListMine")
	defer span.End()

	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	items, err := s.notifications.ListByProfile(ctx, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, profileID, notificationID string) error {
	ctx, span := startUsecaseSpan(ctx, "NotificationService.MarkRead")
	defer span.End()

	ok, err := s.notifications.MarkRead(ctx, profileID, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: notification %s", ErrNotFound, notificationID)
	}

	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, profileID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "NotificationService.UnreadCount")
	defer span.End()

	count, err := s.notifications.CountUnread(ctx, profileID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	return count, nil
}

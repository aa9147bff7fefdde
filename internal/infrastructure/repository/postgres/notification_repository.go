package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/courtside/hooprun/internal/domain/notification"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	ProfileID string    `db:"profile_id"`
	Kind      string    `db:"kind"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	ImageURL  string    `db:"image_url"`
	Data      []byte    `db:"data"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}

func (m notificationTableModel) toDomain() (notification.Notification, error) {
	out := notification.Notification{
		ID:        m.PublicID,
		ProfileID: m.ProfileID,
		Kind:      notification.Kind(m.Kind),
		Title:     m.Title,
		Body:      m.Body,
		ImageURL:  m.ImageURL,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Data) > 0 {
		if err := sonic.Unmarshal(m.Data, &out.Data); err != nil {
			return notification.Notification{}, fmt.Errorf("decode notification %s data: %w", m.PublicID, err)
		}
	}

	return out, nil
}

const notificationColumns = `id, public_id, profile_id, kind, title, body, image_url, data, read, created_at`

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	data := []byte("{}")
	if len(n.Data) > 0 {
		raw, err := sonic.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("encode notification data: %w", err)
		}
		data = raw
	}

	const query = `
INSERT INTO notifications (public_id, profile_id, kind, title, body, image_url, data, read, created_at)
VALUES (:public_id, :profile_id, :kind, :title, :body, :image_url, :data, :read, :created_at)`

	args := map[string]any{
		"public_id":  n.ID,
		"profile_id": n.ProfileID,
		"kind":       string(n.Kind),
		"title":      n.Title,
		"body":       n.Body,
		"image_url":  n.ImageURL,
		"data":       data,
		"read":       n.Read,
		"created_at": n.CreatedAt,
	}
	insertSQL, insertArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind insert notification query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) ListByProfile(ctx context.Context, profileID string, limit int) ([]notification.Notification, error) {
	query := `
SELECT ` + notificationColumns + `
FROM notifications
WHERE profile_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

	var rows []notificationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		n, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, profileID, notificationID string) (bool, error) {
	const query = `
UPDATE notifications
SET read = TRUE
WHERE public_id = $1
  AND profile_id = $2`

	res, err := r.db.ExecContext(ctx, query, notificationID, profileID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count mark read rows: %w", err)
	}

	return affected > 0, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, profileID string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM notifications
WHERE profile_id = $1
  AND read = FALSE`

	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

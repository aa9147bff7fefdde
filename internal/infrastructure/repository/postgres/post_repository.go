package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/hooprun/internal/domain/post"
)

type PostRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

type postTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	ProfileID string         `db:"profile_id"`
	Body      string         `db:"body"`
	ImageURL  string         `db:"image_url"`
	RunID     sql.NullString `db:"run_id"`
	CreatedAt time.Time      `db:"created_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (m postTableModel) toDomain() post.Post {
	return post.Post{
		ID:        m.PublicID,
		ProfileID: m.ProfileID,
		Body:      m.Body,
		ImageURL:  m.ImageURL,
		RunID:     fromNullString(m.RunID),
		CreatedAt: m.CreatedAt,
	}
}

const postColumns = `id, public_id, profile_id, body, image_url, run_id, created_at, deleted_at`

func (r *PostRepository) Create(ctx context.Context, p post.Post) error {
	const query = `
INSERT INTO posts (public_id, profile_id, body, image_url, run_id, created_at)
VALUES (:public_id, :profile_id, :body, :image_url, :run_id, :created_at)`

	args := map[string]any{
		"public_id":  p.ID,
		"profile_id": p.ProfileID,
		"body":       p.Body,
		"image_url":  p.ImageURL,
		"run_id":     nullString(p.RunID),
		"created_at": p.CreatedAt,
	}
	insertSQL, insertArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind insert post query: %w", err)
	}
	insertSQL = r.db.Rebind(insertSQL)

	if _, err := r.db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *PostRepository) ListFeed(ctx context.Context, limit int) ([]post.Post, error) {
	query := `
SELECT ` + postColumns + `
FROM posts
WHERE deleted_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT $1`

	var rows []postTableModel
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	out := make([]post.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PostRepository) ListByProfile(ctx context.Context, profileID string, limit int) ([]post.Post, error) {
	query := `
SELECT ` + postColumns + `
FROM posts
WHERE profile_id = $1
  AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT $2`

	var rows []postTableModel
	if err := r.db.SelectContext(ctx, &rows, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("list profile posts: %w", err)
	}

	out := make([]post.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

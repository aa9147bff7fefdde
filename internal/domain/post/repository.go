package post

import "context"

// Repository describes post persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, p Post) error
	// ListFeed returns newest posts first, up to limit.
	ListFeed(ctx context.Context, limit int) ([]Post, error)
	ListByProfile(ctx context.Context, profileID string, limit int) ([]Post, error)
}

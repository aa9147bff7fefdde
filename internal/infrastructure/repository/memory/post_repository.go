package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/courtside/hooprun/internal/domain/post"
)

type PostRepository struct {
	mu    sync.RWMutex
	items []post.Post
}

func NewPostRepository(posts []post.Post) *PostRepository {
	items := make([]post.Post, len(posts))
	copy(items, posts)

	return &PostRepository{items: items}
}

func (r *PostRepository) Create(_ context.Context, p post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, p)

	return nil
}

func (r *PostRepository) ListFeed(_ context.Context, limit int) ([]post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return newestFirst(r.items, limit, func(post.Post) bool { return true }), nil
}

func (r *PostRepository) ListByProfile(_ context.Context, profileID string, limit int) ([]post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return newestFirst(r.items, limit, func(p post.Post) bool { return p.ProfileID == profileID }), nil
}

func newestFirst(items []post.Post, limit int, keep func(post.Post) bool) []post.Post {
	out := make([]post.Post, 0, len(items))
	for _, p := range items {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

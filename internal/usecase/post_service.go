package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/hooprun/internal/domain/post"
	"github.com/courtside/hooprun/internal/domain/profile"
	"github.com/courtside/hooprun/internal/platform/id"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// PostService writes and reads the social feed.
type PostService struct {
	posts    post.Repository
	profiles profile.Repository
	idGen    id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewPostService(posts post.Repository, profiles profile.Repository, idGen id.Generator, logger *logging.Logger) *PostService {
	return &PostService{
		posts:    posts,
		profiles: profiles,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

type CreatePostInput struct {
	ProfileID string
	Body      string
	ImageURL  string
	RunID     string
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post.Post, error) {
	ctx, span := startUsecaseSpan(ctx, "PostService.CreatePost")
	defer span.End()

	pid, err := s.idGen.NewID()
	if err != nil {
		return post.Post{}, fmt.Errorf("generate post id: %w", err)
	}

	p := post.Post{
		ID:        pid,
		ProfileID: in.ProfileID,
		Body:      in.Body,
		ImageURL:  in.ImageURL,
		RunID:     in.RunID,
		CreatedAt: s.now(),
	}
	if err := p.Validate(); err != nil {
		return post.Post{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return post.Post{}, fmt.Errorf("create post: %w", err)
	}

	return p, nil
}

// FeedEntry is one post annotated with its author's display profile.
type FeedEntry struct {
	post.Post
	Author profile.Display
}

const defaultFeedLimit = 50

// GetFeed returns the newest posts with authors resolved in one bulk
// lookup.
func (s *PostService) GetFeed(ctx context.Context, limit int) ([]FeedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "PostService.GetFeed")
	defer span.End()

	if limit <= 0 {
		limit = defaultFeedLimit
	}

	posts, err := s.posts.ListFeed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}

	return s.withAuthors(ctx, posts)
}

// GetProfilePosts returns one profile's posts, newest first.
func (s *PostService) GetProfilePosts(ctx context.Context, profileID string, limit int) ([]FeedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "PostService.GetProfilePosts")
	defer span.End()

	if limit <= 0 {
		limit = defaultFeedLimit
	}

	posts, err := s.posts.ListByProfile(ctx, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list profile posts: %w", err)
	}

	return s.withAuthors(ctx, posts)
}

func (s *PostService) withAuthors(ctx context.Context, posts []post.Post) ([]FeedEntry, error) {
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		authorIDs = append(authorIDs, p.ProfileID)
	}

	authors, err := s.profiles.GetDisplayByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	entries := make([]FeedEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, FeedEntry{Post: p, Author: authors[p.ProfileID]})
	}

	return entries, nil
}

package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/hooprun/internal/infrastructure/repository/memory"
	"github.com/courtside/hooprun/internal/platform/logging"
)

func newPostService(t *testing.T) *PostService {
	t.Helper()

	svc := NewPostService(
		memory.NewPostRepository(nil),
		memory.NewProfileRepository(memory.SeedProfiles()),
		&seqIDGenerator{},
		logging.NewNop(),
	)

	return svc
}

func TestPostService_CreatePost(t *testing.T) {
	svc := newPostService(t)

	created, err := svc.CreatePost(t.Context(), CreatePostInput{
		ProfileID: memory.ProfileIDJordan,
		Body:      "Great run at Rucker today",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestPostService_CreatePost_RejectsOversizedBody(t *testing.T) {
	svc := newPostService(t)

	_, err := svc.CreatePost(t.Context(), CreatePostInput{
		ProfileID: memory.ProfileIDJordan,
		Body:      strings.Repeat("x", 2001),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostService_GetFeed_AnnotatesAuthorsNewestFirst(t *testing.T) {
	svc := newPostService(t)

	for _, body := range []string{"first", "second", "third"} {
		_, err := svc.CreatePost(t.Context(), CreatePostInput{ProfileID: memory.ProfileIDAaliyah, Body: body})
		require.NoError(t, err)
	}

	feed, err := svc.GetFeed(t.Context(), 2)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "third", feed[0].Body)
	assert.Equal(t, "acole", feed[0].Author.Username)
}

func TestPostService_GetProfilePosts_FiltersByAuthor(t *testing.T) {
	svc := newPostService(t)

	_, err := svc.CreatePost(t.Context(), CreatePostInput{ProfileID: memory.ProfileIDJordan, Body: "mine"})
	require.NoError(t, err)
	_, err = svc.CreatePost(t.Context(), CreatePostInput{ProfileID: memory.ProfileIDMarcus, Body: "theirs"})
	require.NoError(t, err)

	posts, err := svc.GetProfilePosts(t.Context(), memory.ProfileIDJordan, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Body)
}

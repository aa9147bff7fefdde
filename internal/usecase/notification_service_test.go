package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/infrastructure/repository/memory"
	"github.com/courtside/hooprun/internal/platform/logging"
)

func TestNotificationService_ReadLifecycle(t *testing.T) {
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, logging.NewNop())

	seed := notification.Notification{
		ID:        "ntf-1",
		ProfileID: memory.ProfileIDJordan,
		Kind:      notification.KindRunInvite,
		Title:     "You're invited",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(t.Context(), seed))

	count, err := svc.UnreadCount(t.Context(), memory.ProfileIDJordan)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkRead(t.Context(), memory.ProfileIDJordan, "ntf-1"))

	count, err = svc.UnreadCount(t.Context(), memory.ProfileIDJordan)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	mine, err := svc.ListMine(t.Context(), memory.ProfileIDJordan, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Read)
}

func TestNotificationService_MarkRead_WrongProfileIsNotFound(t *testing.T) {
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, logging.NewNop())

	require.NoError(t, repo.Create(t.Context(), notification.Notification{
		ID:        "ntf-2",
		ProfileID: memory.ProfileIDAaliyah,
		Kind:      notification.KindRunInvite,
		Title:     "You're invited",
		CreatedAt: time.Now(),
	}))

	err := svc.MarkRead(t.Context(), memory.ProfileIDJordan, "ntf-2")
	require.ErrorIs(t, err, ErrNotFound)
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/infrastructure/repository/memory"
	"github.com/courtside/hooprun/internal/platform/logging"
)

type recordingPushSender struct {
	mu   sync.Mutex
	sent []notification.Notification
	err  error
}

func (p *recordingPushSender) Send(_ context.Context, n notification.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sent = append(p.sent, n)

	return p.err
}

func (p *recordingPushSender) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.sent)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestNotificationDispatcher_PersistsAndPushes(t *testing.T) {
	repo := memory.NewNotificationRepository()
	push := &recordingPushSender{}

	dispatcher, err := NewNotificationDispatcher(repo, push, &seqIDGenerator{}, logging.NewNop(), 4)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	defer dispatcher.Close()

	dispatcher.Dispatch(t.Context(), notification.NewRunInvite("prof-a", "run-1", "Jordan Banks"))

	waitFor(t, func() bool { return push.count() == 1 })

	stored, err := repo.ListByProfile(t.Context(), "prof-a", 10)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(stored))
	}
	if stored[0].ID == "" || stored[0].CreatedAt.IsZero() {
		t.Fatalf("expected stamped notification, got %+v", stored[0])
	}
	if stored[0].Kind != notification.KindRunInvite {
		t.Fatalf("expected run_invite, got %s", stored[0].Kind)
	}
}

func TestNotificationDispatcher_PushFailureStillPersists(t *testing.T) {
	repo := memory.NewNotificationRepository()
	push := &recordingPushSender{err: errors.New("gateway down")}

	dispatcher, err := NewNotificationDispatcher(repo, push, &seqIDGenerator{}, logging.NewNop(), 4)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	defer dispatcher.Close()

	dispatcher.Dispatch(t.Context(), notification.NewInviteStatus("prof-b", "run-1", "Accepted"))

	waitFor(t, func() bool {
		count, err := repo.CountUnread(context.Background(), "prof-b")
		return err == nil && count == 1
	})
}

func TestNotificationDispatcher_DropsInvalidPayload(t *testing.T) {
	repo := memory.NewNotificationRepository()

	dispatcher, err := NewNotificationDispatcher(repo, nil, &seqIDGenerator{}, logging.NewNop(), 4)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	defer dispatcher.Close()

	// Missing profile id never reaches storage.
	dispatcher.Dispatch(t.Context(), notification.Notification{Kind: notification.KindRunInvite, Title: "x"})

	time.Sleep(50 * time.Millisecond)
	count, err := repo.CountUnread(context.Background(), "")
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected nothing stored, got %d", count)
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/courtside/hooprun/internal/domain/notification"
	"github.com/courtside/hooprun/internal/platform/id"
	"github.com/courtside/hooprun/internal/platform/logging"
)

// Notifier is the fire-and-forget surface roster and run flows emit through.
// Implementations must never fail the caller's operation.
type Notifier interface {
	Dispatch(ctx context.Context, n notification.Notification)
}

// PushSender mirrors a stored notification to the external push gateway.
type PushSender interface {
	Send(ctx context.Context, n notification.Notification) error
}

// NotificationDispatcher persists notifications and mirrors them to push on
// a shared worker pool. Delivery failures are logged and dropped; roster and
// run outcomes never depend on them.
type NotificationDispatcher struct {
	repo    notification.Repository
	push    PushSender
	pool    *ants.Pool
	idGen   id.Generator
	logger  *logging.Logger
	now     func() time.Time
	timeout time.Duration
}

func NewNotificationDispatcher(repo notification.Repository, push PushSender, idGen id.Generator, logger *logging.Logger, poolSize int) (*NotificationDispatcher, error) {
	if poolSize <= 0 {
		poolSize = 32
	}
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &NotificationDispatcher{
		repo:    repo,
		push:    push,
		pool:    pool,
		idGen:   idGen,
		logger:  logger,
		now:     time.Now,
		timeout: 10 * time.Second,
	}, nil
}

// Dispatch stamps the notification and hands it to the pool. When the pool
// is saturated the work runs inline so nothing is silently lost.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, n notification.Notification) {
	nid, err := d.idGen.NewID()
	if err != nil {
		d.logger.ErrorContext(ctx, "notification id generation failed", "error", err)
		return
	}
	n.ID = nid
	n.CreatedAt = d.now()

	if err := n.Validate(); err != nil {
		d.logger.ErrorContext(ctx, "notification dropped, invalid payload", "error", err)
		return
	}

	// Detach from the request context; delivery must outlive the handler.
	base := context.WithoutCancel(ctx)
	job := func() { d.deliver(base, n) }

	if err := d.pool.Submit(job); err != nil {
		d.logger.WarnContext(ctx, "notification pool saturated, delivering inline", "error", err)
		job()
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n notification.Notification) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.repo.Create(ctx, n); err != nil {
		d.logger.ErrorContext(ctx, "notification persist failed",
			"profile_id", n.ProfileID, "kind", string(n.Kind), "error", err)
		return
	}

	if d.push == nil {
		return
	}
	if err := d.push.Send(ctx, n); err != nil {
		d.logger.WarnContext(ctx, "push delivery failed",
			"profile_id", n.ProfileID, "kind", string(n.Kind), "error", err)
	}
}

// Close releases the worker pool. Safe to call once during shutdown.
func (d *NotificationDispatcher) Close() {
	d.pool.Release()
}

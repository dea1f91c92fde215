package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/sourcegraph/conc"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultTimeout     = 5 * time.Second
	DefaultMaxInFlight = 64
)

// ErrNotificationDropped is returned when too many deliveries are in flight.
var ErrNotificationDropped = errors.New("notification dropped: too many in flight")

var _ ports.Notifier = (*AsyncNotifier)(nil)

// AsyncNotifier hands each notification to a goroutine and returns at once.
// At most maxInFlight deliveries run concurrently; anything beyond that is
// dropped. Each delivery gets its own deadline and outlives the caller's
// context cancellation.
type AsyncNotifier struct {
	next    ports.Notifier
	timeout time.Duration
	slots   *semaphore.Weighted
	wg      conc.WaitGroup
	logger  *slog.Logger
}

func NewAsyncNotifier(next ports.Notifier, timeout time.Duration, maxInFlight int, logger *slog.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	return &AsyncNotifier{
		next:    next,
		timeout: timeout,
		slots:   semaphore.NewWeighted(int64(maxInFlight)),
		logger:  logger.With("component", "async-notifier"),
	}
}

// Notify schedules delivery. The only error it reports is ErrNotificationDropped;
// delivery failures are logged by the worker.
func (n *AsyncNotifier) Notify(ctx context.Context, msg ports.Notification) error {
	if !n.slots.TryAcquire(1) {
		n.logger.WarnContext(ctx, "Notification dropped",
			"kind", msg.Kind.String(),
			"item_id", msg.ItemID.String(),
			"route_id", msg.RouteID.String(),
		)
		return ErrNotificationDropped
	}

	detached := context.WithoutCancel(ctx)
	n.wg.Go(func() {
		defer n.slots.Release(1)

		sendCtx, cancel := context.WithTimeout(detached, n.timeout)
		defer cancel()

		if err := n.next.Notify(sendCtx, msg); err != nil {
			n.logger.WarnContext(sendCtx, "Notification delivery failed",
				"kind", msg.Kind.String(),
				"item_id", msg.ItemID.String(),
				"route_id", msg.RouteID.String(),
				"error", err,
			)
		}
	})
	return nil
}

// Wait blocks until every scheduled delivery has finished. A panicking
// delivery is logged instead of crashing the caller.
func (n *AsyncNotifier) Wait() {
	if r := n.wg.WaitAndRecover(); r != nil {
		n.logger.Error("Notification worker panicked", "panic", r.String())
	}
}

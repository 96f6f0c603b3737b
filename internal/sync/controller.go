// Package sync owns the polling side of the dispatch core: the Snapshot view
// of orders and assignments, and the Controller that refreshes it against the
// remote service with throttling and rate-limit backoff.
package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/notifications"
	"dispatch/internal/pkg/errs"
)

const (
	// MinRefreshInterval is the hard floor between refresh attempts. Calls
	// arriving inside the floor are dropped without error or queueing.
	MinRefreshInterval = 10 * time.Second

	// BaseBackoff is the resting retry interval. Every rate-limit response
	// doubles the effective interval, so the first one already yields
	// 2*BaseBackoff; the doubling is capped at MaxBackoff and any success
	// resets it back to rest.
	BaseBackoff = 30 * time.Second

	// MaxBackoff caps the doubling.
	MaxBackoff = 5 * time.Minute

	// MinBackgroundPeriod is the slowest the background loop is allowed to
	// assume the world changes. The effective background period is the larger
	// of this and the current backoff.
	MinBackgroundPeriod = time.Minute
)

// fetchStatuses is the remote working set: every order status that maps onto
// the delivery lifecycle. Pending orders are not dispatch-relevant.
var fetchStatuses = []order.Status{
	order.StatusReady,
	order.StatusPreparing,
	order.StatusConfirmed,
	order.StatusDelivered,
	order.StatusCancelled,
}

// Controller drives snapshot refreshes. A busy flag serializes cycles, a
// timestamp floor throttles triggers, and a doubling backoff absorbs remote
// rate limiting. After every applied refresh the deduplicator observes the
// new view and its events are appended to the journal.
type Controller struct {
	client   ports.DeliveryClient
	snapshot *Snapshot
	dedup    *notifications.Deduplicator
	journal  ports.NotificationJournal
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	busy        bool
	closed      bool
	lastAttempt time.Time
	backoff     time.Duration
	nextSeq     uint64
}

// NewController wires a controller. All collaborators are required.
func NewController(
	client ports.DeliveryClient,
	snapshot *Snapshot,
	dedup *notifications.Deduplicator,
	journal ports.NotificationJournal,
	logger *slog.Logger,
) (*Controller, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if snapshot == nil {
		return nil, errs.NewValueIsRequiredError("snapshot")
	}
	if dedup == nil {
		return nil, errs.NewValueIsRequiredError("dedup")
	}
	if journal == nil {
		return nil, errs.NewValueIsRequiredError("journal")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Controller{
		client:   client,
		snapshot: snapshot,
		dedup:    dedup,
		journal:  journal,
		logger:   logger.With("component", "sync.Controller"),
		now:      time.Now,
	}, nil
}

// RefreshNow runs a foreground refresh. Errors from the remote service are
// returned to the caller; a call dropped by the busy flag or the interval
// floor returns nil and does nothing.
func (c *Controller) RefreshNow(ctx context.Context) error {
	return c.refresh(ctx, false)
}

// TickBackground is called on every scheduler tick. It starts a silent
// refresh when the effective background period has elapsed since the last
// attempt; remote errors are logged, never surfaced.
func (c *Controller) TickBackground(ctx context.Context) {
	c.mu.Lock()
	due := c.lastAttempt.IsZero() ||
		c.now().Sub(c.lastAttempt) >= c.backgroundPeriodLocked()
	c.mu.Unlock()

	if !due {
		return
	}
	_ = c.refresh(ctx, true)
}

// Backoff reports the current rate-limit backoff; zero when the remote
// service is healthy.
func (c *Controller) Backoff() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backoff
}

// Close tears the controller down. In-flight refresh results are discarded
// and later triggers become no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller) backgroundPeriodLocked() time.Duration {
	if c.backoff > MinBackgroundPeriod {
		return c.backoff
	}
	return MinBackgroundPeriod
}

func (c *Controller) refresh(ctx context.Context, silent bool) error {
	c.mu.Lock()
	now := c.now()
	if c.closed || c.busy {
		c.mu.Unlock()
		return nil
	}
	if !c.lastAttempt.IsZero() && now.Sub(c.lastAttempt) < MinRefreshInterval {
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	c.lastAttempt = now
	seq := c.nextSeq
	c.nextSeq++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	orders, assignments, err := c.fetch(ctx)
	if err != nil {
		c.recordFailure(err)
		if silent {
			c.logger.Warn("background refresh failed", "error", err)
			return nil
		}
		return err
	}

	c.mu.Lock()
	c.backoff = 0
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil
	}

	if !c.snapshot.Replace(seq, orders, assignments, now) {
		// A later-issued refresh already landed; this result is stale.
		return nil
	}
	c.publish(ctx, orders, assignments)
	return nil
}

func (c *Controller) recordFailure(err error) {
	if !errors.Is(err, errs.ErrRateLimited) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.backoff == 0:
		c.backoff = 2 * BaseBackoff
	case c.backoff*2 > MaxBackoff:
		c.backoff = MaxBackoff
	default:
		c.backoff *= 2
	}
}

func (c *Controller) fetch(ctx context.Context) ([]*order.Order, map[kernel.UUID]delivery.Assignment, error) {
	var all []*order.Order
	for _, status := range fetchStatuses {
		orders, err := c.client.FetchOrdersByStatus(ctx, status)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, orders...)
	}

	assignments := make(map[kernel.UUID]delivery.Assignment, len(all))
	for _, o := range all {
		asg, err := c.client.FetchAssignment(ctx, o.ID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return nil, nil, err
		}
		if asg != nil {
			assignments[o.ID] = *asg
		}
	}
	return all, assignments, nil
}

// publish feeds the applied view through the deduplicator and journals
// whatever it emits. Journal failures are logged per entry and do not fail
// the refresh.
func (c *Controller) publish(ctx context.Context, orders []*order.Order, assignments map[kernel.UUID]delivery.Assignment) {
	entries := make([]notifications.SnapshotEntry, 0, len(orders))
	for _, o := range orders {
		status := services.ToDeliveryStatus(o.Status)
		if asg, ok := assignments[o.ID]; ok {
			status = asg.Status()
		}
		entries = append(entries, notifications.SnapshotEntry{
			OrderID:     o.ID,
			OrderNumber: o.Number,
			Status:      status,
		})
	}

	for _, n := range c.dedup.Observe(entries, c.now()) {
		if err := c.journal.Append(ctx, n); err != nil {
			c.logger.Error("append notification", "error", err, "orderID", n.OrderID.String())
		}
	}
}

// Package notifications implements the refresh-time notification pipeline:
// the Deduplicator decides which snapshot changes deserve an event, and the
// bounded journal stores what it emits.
package notifications

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
)

// SnapshotEntry is the slice of an order the deduplicator cares about.
type SnapshotEntry struct {
	OrderID     kernel.UUID
	OrderNumber string
	Status      delivery.Status
}

// Deduplicator detects genuinely new or externally-changed orders across
// refreshes while suppressing events for actions the local consumer just
// performed. It keeps the order ids seen on the previous refresh, the last
// recorded delivery status per order, and a transient set of ids whose status
// change was self-initiated.
//
// Safe for concurrent use: command handlers mark self-initiated changes while
// the refresh loop observes snapshots.
type Deduplicator struct {
	mu            sync.Mutex
	knownIDs      map[kernel.UUID]struct{}
	lastStatus    map[kernel.UUID]delivery.Status
	selfInitiated map[kernel.UUID]struct{}
}

// NewDeduplicator creates an empty deduplicator. The first observed snapshot
// only seeds state and emits nothing.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		knownIDs:      make(map[kernel.UUID]struct{}),
		lastStatus:    make(map[kernel.UUID]delivery.Status),
		selfInitiated: make(map[kernel.UUID]struct{}),
	}
}

// MarkSelfInitiated records that the local consumer just submitted a status
// change for the order, so the next refresh must not report it as a remote
// change. Called before the network call is sent; the marker is drained by the
// next Observe.
func (d *Deduplicator) MarkSelfInitiated(orderID kernel.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selfInitiated[orderID] = struct{}{}
}

// Observe processes one reconciled snapshot and returns the notifications it
// warrants. Orders absent from the previous non-empty id set produce a
// new-order event; known orders whose status moved without a self-initiated
// marker produce a remote-change event. Afterwards the self-initiated set is
// cleared and the id/status maps are replaced wholesale with the snapshot's
// values.
func (d *Deduplicator) Observe(snapshot []SnapshotEntry, now time.Time) []notification.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	hadPrevious := len(d.knownIDs) > 0
	var emitted []notification.Notification

	for _, entry := range snapshot {
		if _, known := d.knownIDs[entry.OrderID]; !known {
			if hadPrevious {
				emitted = append(emitted, notification.NewOrderNotification(
					entry.OrderID, entry.OrderNumber, entry.Status, now))
			}
			continue
		}

		previous := d.lastStatus[entry.OrderID]
		if previous == entry.Status {
			continue
		}
		if _, self := d.selfInitiated[entry.OrderID]; self {
			continue
		}
		emitted = append(emitted, notification.StatusChangeNotification(
			entry.OrderID, entry.OrderNumber, previous, entry.Status, now))
	}

	d.selfInitiated = make(map[kernel.UUID]struct{})
	d.knownIDs = make(map[kernel.UUID]struct{}, len(snapshot))
	d.lastStatus = make(map[kernel.UUID]delivery.Status, len(snapshot))
	for _, entry := range snapshot {
		d.knownIDs[entry.OrderID] = struct{}{}
		d.lastStatus[entry.OrderID] = entry.Status
	}

	return emitted
}

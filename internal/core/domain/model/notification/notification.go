// Package notification models the events the deduplicator emits when a
// refresh reveals genuinely new or externally-changed orders.
package notification

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// Kind distinguishes the two event families a refresh can produce.
type Kind string

const (
	// KindNewOrder means an order id appeared that was absent from the
	// previous snapshot: newly assigned to this consumer.
	KindNewOrder Kind = "new_order"
	// KindRemoteStatusChange means a known order's delivery status differs
	// from the last recorded value and the change was not self-initiated.
	KindRemoteStatusChange Kind = "remote_status_change"
)

// Notification is one journal entry. ID is assigned on creation; entries are
// immutable apart from the read marker.
type Notification struct {
	ID          kernel.UUID
	Kind        Kind
	OrderID     kernel.UUID
	OrderNumber string
	OldStatus   delivery.Status
	NewStatus   delivery.Status
	Message     string
	CreatedAt   time.Time
	ReadAt      *time.Time
}

// NewOrderNotification builds a "newly assigned to you" entry.
func NewOrderNotification(orderID kernel.UUID, orderNumber string, status delivery.Status, now time.Time) Notification {
	return Notification{
		ID:          kernel.NewUUID(),
		Kind:        KindNewOrder,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		NewStatus:   status,
		Message:     "New delivery order " + orderNumber,
		CreatedAt:   now,
	}
}

// StatusChangeNotification builds a "status changed remotely" entry.
func StatusChangeNotification(orderID kernel.UUID, orderNumber string, oldStatus, newStatus delivery.Status, now time.Time) Notification {
	return Notification{
		ID:          kernel.NewUUID(),
		Kind:        KindRemoteStatusChange,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		Message:     "Order " + orderNumber + " moved from " + oldStatus.String() + " to " + newStatus.String(),
		CreatedAt:   now,
	}
}

// IsRead reports whether the entry has been marked read.
func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}

// Package commands holds the write-side use cases of the dispatch core. Each
// command is a guard-validated value object; its handler checks local
// preconditions against the snapshot, marks self-initiated changes for the
// notification deduplicator, and issues the mutation to the remote service.
package commands

import (
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// SnapshotReader is the read access handlers need for precondition checks.
// The live implementation is the sync snapshot.
type SnapshotReader interface {
	Order(id kernel.UUID) (*order.Order, bool)
	Assignment(orderID kernel.UUID) (delivery.Assignment, bool)
}

// ChangeMarker records a self-initiated status mutation so the next refresh
// does not report it back as a remote change. Handlers mark before the
// network call is sent.
type ChangeMarker interface {
	MarkSelfInitiated(orderID kernel.UUID)
}

package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// BulkAssignCommandHandler submits a batch assignment and passes the
// backend's partial-failure report through unchanged. Every selected order is
// marked self-initiated up front; refused orders simply keep their previous
// state on the next refresh.
type BulkAssignCommandHandler struct {
	client ports.DeliveryClient
	marker ChangeMarker
}

// NewBulkAssignCommandHandler creates the handler.
func NewBulkAssignCommandHandler(client ports.DeliveryClient, marker ChangeMarker) BulkAssignCommandHandler {
	return BulkAssignCommandHandler{
		client: client,
		marker: marker,
	}
}

// Handle submits the batch. The returned report's three lists are disjoint
// and cover the whole selection.
func (h BulkAssignCommandHandler) Handle(ctx context.Context, command BulkAssignCommand) (ports.BulkAssignReport, error) {
	if err := command.Validate(); err != nil {
		return ports.BulkAssignReport{}, err
	}

	for _, id := range command.OrderIDs() {
		h.marker.MarkSelfInitiated(id)
	}
	return h.client.BulkAssign(ctx, command.OrderIDs(), command.AgentID(), command.Priority())
}

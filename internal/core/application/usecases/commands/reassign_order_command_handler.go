package commands

import (
	"context"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderNotAssigned rejects reassigning an order without an active
	// binding; callers should assign instead.
	ErrOrderNotAssigned error = errs.NewValidationError("order has no active assignment, use assign")

	// ErrSameAgentReassignment rejects a reassignment to the agent already
	// holding the order.
	ErrSameAgentReassignment error = errs.NewValidationError("order is already assigned to this agent")
)

// ReassignOrderCommandHandler moves an order between agents. The backend
// retires the old binding and records the handover atomically; locally we
// only verify the preconditions that make the request meaningful.
type ReassignOrderCommandHandler struct {
	client   ports.DeliveryClient
	snapshot SnapshotReader
	marker   ChangeMarker
}

// NewReassignOrderCommandHandler creates the handler.
func NewReassignOrderCommandHandler(
	client ports.DeliveryClient,
	snapshot SnapshotReader,
	marker ChangeMarker,
) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		client:   client,
		snapshot: snapshot,
		marker:   marker,
	}
}

// Handle checks that the order is assigned to a different agent and submits
// the reassignment.
func (h ReassignOrderCommandHandler) Handle(ctx context.Context, command ReassignOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if _, ok := h.snapshot.Order(command.OrderID()); !ok {
		return errs.NewObjectNotFoundError("orderID", command.OrderID().String())
	}
	current, assigned := h.snapshot.Assignment(command.OrderID())
	if !assigned {
		return ErrOrderNotAssigned
	}
	if current.AgentID().IsEqual(command.AgentID()) {
		return ErrSameAgentReassignment
	}

	h.marker.MarkSelfInitiated(command.OrderID())
	return h.client.Reassign(ctx, command.OrderID(), command.AgentID(), command.Reason())
}

package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrOrderAlreadyAssigned rejects assigning an order that has an active
// binding; callers should reassign instead.
var ErrOrderAlreadyAssigned error = errs.NewValidationError("order already has an active assignment, use reassign")

// AssignOrderCommandHandler performs a single assignment. The order must be
// known locally and unassigned; the derived item count and total accompany
// the request, with unset sentinels when the local record cannot supply them.
type AssignOrderCommandHandler struct {
	client   ports.DeliveryClient
	snapshot SnapshotReader
	marker   ChangeMarker
}

// NewAssignOrderCommandHandler creates the handler.
func NewAssignOrderCommandHandler(
	client ports.DeliveryClient,
	snapshot SnapshotReader,
	marker ChangeMarker,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		client:   client,
		snapshot: snapshot,
		marker:   marker,
	}
}

// Handle checks the preconditions and submits the assignment, returning the
// identifier of the created binding.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	o, ok := h.snapshot.Order(command.OrderID())
	if !ok {
		return kernel.UUID{}, errs.NewObjectNotFoundError("orderID", command.OrderID().String())
	}
	if _, assigned := h.snapshot.Assignment(command.OrderID()); assigned {
		return kernel.UUID{}, ErrOrderAlreadyAssigned
	}

	orderCtx := ports.OrderContext{
		ItemCount: o.ItemCount(),
		Total:     order.TotalUnset,
	}
	if o.HasTotal() {
		orderCtx.Total = o.Total
	}

	h.marker.MarkSelfInitiated(command.OrderID())
	return h.client.Assign(ctx, command.OrderID(), command.AgentID(), orderCtx)
}

package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler applies a delivery status change.
// The transition is checked locally against the current snapshot state before
// anything is sent: agents get the strict table, dispatchers bypass it. The
// change is marked self-initiated first so the follow-up refresh stays quiet
// about it.
type UpdateDeliveryStatusCommandHandler struct {
	client   ports.DeliveryClient
	snapshot SnapshotReader
	marker   ChangeMarker
}

// NewUpdateDeliveryStatusCommandHandler creates the handler.
func NewUpdateDeliveryStatusCommandHandler(
	client ports.DeliveryClient,
	snapshot SnapshotReader,
	marker ChangeMarker,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		client:   client,
		snapshot: snapshot,
		marker:   marker,
	}
}

// Handle validates the transition and submits it. Agent requests that break
// the one-step table fail with a TransitionError and no network call. Orders
// unknown to the snapshot fail with ErrObjectNotFound.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, command UpdateDeliveryStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	o, ok := h.snapshot.Order(command.OrderID())
	if !ok {
		return errs.NewObjectNotFoundError("orderID", command.OrderID().String())
	}

	if !command.Actor().IsDispatcher() {
		current := services.ToDeliveryStatus(o.Status)
		if asg, assigned := h.snapshot.Assignment(command.OrderID()); assigned {
			current = asg.Status()
		}
		if _, err := current.TransitionForAgent(command.Target()); err != nil {
			return err
		}
	}

	h.marker.MarkSelfInitiated(command.OrderID())
	return h.client.UpdateDeliveryStatus(ctx, command.OrderID(), command.Target(), command.Proof())
}

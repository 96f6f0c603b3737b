package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
)

// ErrDispatcherRoleRequired rejects dispatcher-only operations requested by a
// field agent.
var ErrDispatcherRoleRequired = errors.New("operation requires the dispatcher role")

// SetOrderStatusCommandHandler performs the dispatcher's direct backend
// status write.
type SetOrderStatusCommandHandler struct {
	client ports.DeliveryClient
	marker ChangeMarker
}

// NewSetOrderStatusCommandHandler creates the handler.
func NewSetOrderStatusCommandHandler(client ports.DeliveryClient, marker ChangeMarker) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		client: client,
		marker: marker,
	}
}

// Handle submits the status write. Only dispatchers may call it; agents are
// rejected with ErrDispatcherRoleRequired before any network call.
func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, command SetOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if !command.Actor().IsDispatcher() {
		return ErrDispatcherRoleRequired
	}

	h.marker.MarkSelfInitiated(command.OrderID())
	return h.client.UpdateOrderStatus(ctx, command.OrderID(), command.Status())
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand writes a backend order status directly, skipping the
// delivery lifecycle mapping. This is the dispatcher override path.
type SetOrderStatusCommand struct {
	orderID kernel.UUID
	status  order.Status
	actor   delivery.Actor

	guard guard.ConstructorGuard
}

// NewSetOrderStatusCommand creates a validated direct status write.
func NewSetOrderStatusCommand(orderID kernel.UUID, status order.Status, actor delivery.Actor) (SetOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SetOrderStatusCommand{}, err
	}
	if err := status.Validate(); err != nil {
		return SetOrderStatusCommand{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return SetOrderStatusCommand{
		orderID: orderID,
		status:  status,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order.
func (c *SetOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the backend status to write.
func (c *SetOrderStatusCommand) Status() order.Status {
	return c.status
}

// Actor returns who requested the write.
func (c *SetOrderStatusCommand) Actor() delivery.Actor {
	return c.actor
}

// Validate ensures the command was created through the constructor.
func (c *SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

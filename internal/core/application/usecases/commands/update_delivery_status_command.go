package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// ErrProofPhotoIsRequired rejects a delivered transition without the
// mandatory photo evidence. The check runs at construction so an incomplete
// request never reaches the wire.
var ErrProofPhotoIsRequired = errs.NewValueIsRequiredError("proof-of-delivery photo")

// UpdateDeliveryStatusCommand requests moving one order along the delivery
// lifecycle. Agents are bound to the strict one-step transition table;
// dispatchers may set any target state. A transition to delivered must carry
// proof with a photo.
type UpdateDeliveryStatusCommand struct {
	orderID kernel.UUID
	target  delivery.Status
	actor   delivery.Actor
	proof   *ports.ProofOfDelivery

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a validated status-change command.
// proof is required when target is delivered and ignored otherwise.
func NewUpdateDeliveryStatusCommand(
	orderID kernel.UUID,
	target delivery.Status,
	actor delivery.Actor,
	proof *ports.ProofOfDelivery,
) (UpdateDeliveryStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if target == delivery.StatusDelivered && (proof == nil || proof.PhotoURL == "") {
		return UpdateDeliveryStatusCommand{}, ErrProofPhotoIsRequired
	}

	return UpdateDeliveryStatusCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		proof:   proof,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose delivery status changes.
func (c *UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested delivery status.
func (c *UpdateDeliveryStatusCommand) Target() delivery.Status {
	return c.target
}

// Actor returns who requested the change.
func (c *UpdateDeliveryStatusCommand) Actor() delivery.Actor {
	return c.actor
}

// Proof returns the delivery evidence; nil for non-delivered targets.
func (c *UpdateDeliveryStatusCommand) Proof() *ports.ProofOfDelivery {
	return c.proof
}

// Validate ensures the command was created through the constructor.
func (c *UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

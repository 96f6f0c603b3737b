package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand moves an actively assigned order to a different
// agent. The optional reason lands in the assignment history.
type ReassignOrderCommand struct {
	orderID kernel.UUID
	agentID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewReassignOrderCommand creates a validated reassignment command.
func NewReassignOrderCommand(orderID, agentID kernel.UUID, reason string) (ReassignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReassignOrderCommand{}, err
	}
	if err := agentID.Validate(); err != nil {
		return ReassignOrderCommand{}, err
	}

	return ReassignOrderCommand{
		orderID: orderID,
		agentID: agentID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to move.
func (c *ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the new agent.
func (c *ReassignOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Reason returns the optional reassignment note.
func (c *ReassignOrderCommand) Reason() string {
	return c.reason
}

// Validate ensures the command was created through the constructor.
func (c *ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

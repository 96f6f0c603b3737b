package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand binds one unassigned order to one delivery agent.
type AssignOrderCommand struct {
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a validated single-assignment command.
func NewAssignOrderCommand(orderID, agentID kernel.UUID) (AssignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}
	if err := agentID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID: orderID,
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to assign.
func (c *AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the receiving agent.
func (c *AssignOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Validate ensures the command was created through the constructor.
func (c *AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

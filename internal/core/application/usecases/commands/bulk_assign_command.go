package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrBulkAssignCommandIsNotConstructed = errors.New(
	"BulkAssignCommand must be created via NewBulkAssignCommand constructor",
)

// ErrNoOrdersSelected rejects a bulk assignment with an empty order
// selection before anything reaches the wire.
var ErrNoOrdersSelected = errs.NewValueIsRequiredError("order selection")

// BulkAssignCommand assigns a batch of orders to one agent in a single
// round trip. The backend splits the batch into fresh assignments, updated
// bindings, and refusals; partial failure is a normal outcome, not an error.
type BulkAssignCommand struct {
	orderIDs []kernel.UUID
	agentID  kernel.UUID
	priority order.Priority

	guard guard.ConstructorGuard
}

// NewBulkAssignCommand creates a validated batch assignment. The selection
// must be non-empty with every id constructed; priority is normalized to
// medium when empty.
func NewBulkAssignCommand(orderIDs []kernel.UUID, agentID kernel.UUID, priority order.Priority) (BulkAssignCommand, error) {
	if len(orderIDs) == 0 {
		return BulkAssignCommand{}, ErrNoOrdersSelected
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BulkAssignCommand{}, err
		}
	}
	if err := agentID.Validate(); err != nil {
		return BulkAssignCommand{}, err
	}

	return BulkAssignCommand{
		orderIDs: append([]kernel.UUID(nil), orderIDs...),
		agentID:  agentID,
		priority: order.NormalizePriority(priority),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderIDs returns the selected orders.
func (c *BulkAssignCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// AgentID returns the receiving agent.
func (c *BulkAssignCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Priority returns the priority applied to the whole batch.
func (c *BulkAssignCommand) Priority() order.Priority {
	return c.priority
}

// Validate ensures the command was created through the constructor.
func (c *BulkAssignCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignCommandIsNotConstructed)
}

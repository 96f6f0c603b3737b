package delivery

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Assignment is the live binding of one order to one delivery agent.
// At most one active assignment exists per order at any instant; a
// reassignment atomically retires the old binding and creates a new one
// backend-side.
type Assignment struct {
	orderID    kernel.UUID
	agentID    kernel.UUID
	agentName  string
	status     Status
	assignedAt time.Time
}

// NewAssignment creates a validated assignment binding.
func NewAssignment(orderID, agentID kernel.UUID, agentName string, status Status, assignedAt time.Time) (Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return Assignment{}, err
	}
	if err := agentID.Validate(); err != nil {
		return Assignment{}, err
	}
	if err := status.Validate(); err != nil {
		return Assignment{}, err
	}
	if assignedAt.IsZero() {
		return Assignment{}, errs.NewValueIsRequiredError("assignment timestamp")
	}

	return Assignment{
		orderID:    orderID,
		agentID:    agentID,
		agentName:  agentName,
		status:     status,
		assignedAt: assignedAt,
	}, nil
}

// OrderID returns the bound order's identifier.
func (a Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// AgentID returns the bound agent's identifier.
func (a Assignment) AgentID() kernel.UUID {
	return a.agentID
}

// AgentName returns the bound agent's display name. May be empty when the
// roster lookup has not resolved yet.
func (a Assignment) AgentName() string {
	return a.agentName
}

// Status returns the delivery-lifecycle status of the binding.
func (a Assignment) Status() Status {
	return a.status
}

// AssignedAt returns when the binding was created.
func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// Age returns how long the binding has existed.
func (a Assignment) Age(now time.Time) time.Duration {
	return now.Sub(a.assignedAt)
}

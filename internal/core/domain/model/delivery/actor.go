package delivery

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Role distinguishes the two actor kinds driving status changes. Field agents
// are bound to the strict transition table; dispatchers bypass it and may set
// the backend order status directly.
type Role string

const (
	RoleAgent      Role = "agent"
	RoleDispatcher Role = "dispatcher"
)

// Validate checks that the role is one of the known actor kinds.
func (r Role) Validate() error {
	switch r {
	case RoleAgent, RoleDispatcher:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid actor role", string(r)))
	}
}

// Actor identifies who requested an operation.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates a validated actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// IsDispatcher reports whether the actor bypasses the strict agent table.
func (a Actor) IsDispatcher() bool {
	return a.Role == RoleDispatcher
}

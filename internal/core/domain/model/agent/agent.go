// Package agent models the delivery agents sourced from the external roster
// service. Agents are used for display and workload aggregation only; the
// dispatch core never mutates them.
package agent

import (
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Agent is one field agent from the roster.
type Agent struct {
	ID    kernel.UUID
	Name  string
	Phone string
	Email string
}

// Validate checks the invariants the core relies on.
func (a Agent) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	if a.Name == "" {
		return errs.NewValueIsRequiredError("agent name")
	}
	return nil
}

// Workload is the per-agent count of orders in each delivery-lifecycle state.
// It is a pure read-side projection, recomputed on demand and never cached
// across refreshes.
type Workload struct {
	AgentID   kernel.UUID
	AgentName string
	ByStatus  map[delivery.Status]int
}

// Total returns the number of orders currently bound to the agent.
func (w Workload) Total() int {
	sum := 0
	for _, n := range w.ByStatus {
		sum += n
	}
	return sum
}

// Active returns the number of bound orders not yet in a terminal state.
func (w Workload) Active() int {
	active := 0
	for status, n := range w.ByStatus {
		if !status.IsTerminal() {
			active += n
		}
	}
	return active
}

package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAgentOrdersQueryIsNotConstructed = errors.New(
	"GetAgentOrdersQuery must be created via NewGetAgentOrdersQuery constructor",
)

// GetAgentOrdersQuery requests the delivery list of one agent, ranked the
// same way as the dispatch list.
type GetAgentOrdersQuery struct {
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgentOrdersQuery creates a validated agent-orders query.
func NewGetAgentOrdersQuery(agentID kernel.UUID) (GetAgentOrdersQuery, error) {
	if err := agentID.Validate(); err != nil {
		return GetAgentOrdersQuery{}, err
	}
	return GetAgentOrdersQuery{
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// AgentID returns the agent whose orders are requested.
func (q *GetAgentOrdersQuery) AgentID() kernel.UUID {
	return q.agentID
}

// Validate ensures the query was created through the constructor.
func (q *GetAgentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentOrdersQueryIsNotConstructed)
}

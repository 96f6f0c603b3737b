package queries

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
)

// AgentRosterFetcher is the slice of the remote client this query needs.
type AgentRosterFetcher interface {
	FetchAvailableAgents(ctx context.Context) ([]agent.Agent, error)
}

// GetAvailableAgentsQueryHandler passes the roster read through to the
// remote service.
type GetAvailableAgentsQueryHandler struct {
	client AgentRosterFetcher
}

// NewGetAvailableAgentsQueryHandler creates the handler.
func NewGetAvailableAgentsQueryHandler(client AgentRosterFetcher) GetAvailableAgentsQueryHandler {
	return GetAvailableAgentsQueryHandler{client: client}
}

// Handle fetches the assignable agent roster.
func (h GetAvailableAgentsQueryHandler) Handle(ctx context.Context, query GetAvailableAgentsQuery) ([]agent.Agent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.client.FetchAvailableAgents(ctx)
}

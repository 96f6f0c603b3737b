package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// AgentOrdersFetcher is the slice of the remote client the agent list needs.
type AgentOrdersFetcher interface {
	FetchOrdersForAgent(ctx context.Context, agentID kernel.UUID) ([]*order.Order, error)
}

// GetAgentOrdersQueryHandler serves the field agent's own delivery list. The
// orders come straight from the remote service; assignment details are joined
// from the local snapshot.
type GetAgentOrdersQueryHandler struct {
	client   AgentOrdersFetcher
	snapshot SnapshotView
	now      func() time.Time
}

// NewGetAgentOrdersQueryHandler creates the handler. now may be nil and
// defaults to the wall clock.
func NewGetAgentOrdersQueryHandler(client AgentOrdersFetcher, snapshot SnapshotView, now func() time.Time) GetAgentOrdersQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetAgentOrdersQueryHandler{client: client, snapshot: snapshot, now: now}
}

// Handle fetches and ranks the agent's orders, most urgent first.
func (h GetAgentOrdersQueryHandler) Handle(ctx context.Context, query GetAgentOrdersQuery) (GetRankedOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRankedOrdersResponse{}, err
	}

	orders, err := h.client.FetchOrdersForAgent(ctx, query.AgentID())
	if err != nil {
		return GetRankedOrdersResponse{}, err
	}

	now := h.now()
	ranked := services.Rank(orders, h.snapshot.Assignments(), now)
	services.Sort(ranked, services.SortPriority)

	return GetRankedOrdersResponse{
		Orders:    ranked,
		FetchedAt: now,
	}, nil
}

package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// HistoryFetcher is the slice of the remote client this query needs.
type HistoryFetcher interface {
	FetchAssignmentHistory(ctx context.Context, orderID kernel.UUID) ([]delivery.HistoryEntry, error)
}

// GetAssignmentHistoryQueryHandler reads the handover trail from the remote
// service; the backend owns the history, nothing is cached locally.
type GetAssignmentHistoryQueryHandler struct {
	client HistoryFetcher
}

// NewGetAssignmentHistoryQueryHandler creates the handler.
func NewGetAssignmentHistoryQueryHandler(client HistoryFetcher) GetAssignmentHistoryQueryHandler {
	return GetAssignmentHistoryQueryHandler{client: client}
}

// Handle fetches the trail for the order.
func (h GetAssignmentHistoryQueryHandler) Handle(ctx context.Context, query GetAssignmentHistoryQuery) ([]delivery.HistoryEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.client.FetchAssignmentHistory(ctx, query.OrderID())
}

package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// SnapshotView is the read access the list query needs on the local snapshot.
type SnapshotView interface {
	Orders() []*order.Order
	Assignments() map[kernel.UUID]delivery.Assignment
	FetchedAt() time.Time
}

// GetRankedOrdersResponse is the dispatch list with the staleness marker of
// the snapshot it was computed from.
type GetRankedOrdersResponse struct {
	Orders    []services.RankedOrder
	FetchedAt time.Time
}

// GetRankedOrdersQueryHandler computes the dispatch list: rank every snapshot
// order, filter, then sort.
type GetRankedOrdersQueryHandler struct {
	snapshot SnapshotView
	now      func() time.Time
}

// NewGetRankedOrdersQueryHandler creates the handler. now may be nil and
// defaults to the wall clock.
func NewGetRankedOrdersQueryHandler(snapshot SnapshotView, now func() time.Time) GetRankedOrdersQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetRankedOrdersQueryHandler{snapshot: snapshot, now: now}
}

// Handle builds the list. Urgency and scores are computed against the current
// instant, so repeated calls over an unchanged snapshot may still promote
// aging orders.
func (h GetRankedOrdersQueryHandler) Handle(_ context.Context, query GetRankedOrdersQuery) (GetRankedOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRankedOrdersResponse{}, err
	}

	ranked := services.Rank(h.snapshot.Orders(), h.snapshot.Assignments(), h.now())
	ranked = services.Filter(ranked, query.Criteria())
	services.Sort(ranked, query.SortMode())

	return GetRankedOrdersResponse{
		Orders:    ranked,
		FetchedAt: h.snapshot.FetchedAt(),
	}, nil
}

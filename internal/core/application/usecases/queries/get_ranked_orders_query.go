// Package queries holds the read-side use cases: the ranked order list served
// from the local snapshot, and the pass-through reads against the remote
// service and the notification journal.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrGetRankedOrdersQueryIsNotConstructed = errors.New(
	"GetRankedOrdersQuery must be created via NewGetRankedOrdersQuery constructor",
)

// GetRankedOrdersQuery requests the filtered, sorted dispatch list built from
// the local snapshot. No network round trip is involved.
type GetRankedOrdersQuery struct {
	criteria services.ListCriteria
	sortMode services.SortMode

	guard guard.ConstructorGuard
}

// NewGetRankedOrdersQuery creates the query. An empty sort mode falls back to
// the priority comparator.
func NewGetRankedOrdersQuery(criteria services.ListCriteria, sortMode services.SortMode) (GetRankedOrdersQuery, error) {
	if criteria.Status != "" {
		if err := criteria.Status.Validate(); err != nil {
			return GetRankedOrdersQuery{}, err
		}
	}
	if sortMode == "" {
		sortMode = services.SortPriority
	}

	return GetRankedOrdersQuery{
		criteria: criteria,
		sortMode: sortMode,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Criteria returns the conjunctive filters.
func (q *GetRankedOrdersQuery) Criteria() services.ListCriteria {
	return q.criteria
}

// SortMode returns the requested ordering.
func (q *GetRankedOrdersQuery) SortMode() services.SortMode {
	return q.sortMode
}

// Validate ensures the query was created through the constructor.
func (q *GetRankedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRankedOrdersQueryIsNotConstructed)
}

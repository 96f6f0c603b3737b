package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetWorkloadQueryIsNotConstructed = errors.New(
	"GetWorkloadQuery must be created via NewGetWorkloadQuery constructor",
)

// GetWorkloadQuery requests the per-agent active delivery counts.
type GetWorkloadQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWorkloadQuery creates the parameterless workload query.
func NewGetWorkloadQuery() GetWorkloadQuery {
	return GetWorkloadQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q *GetWorkloadQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkloadQueryIsNotConstructed)
}

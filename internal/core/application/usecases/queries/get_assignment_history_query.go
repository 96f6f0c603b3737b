package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentHistoryQueryIsNotConstructed = errors.New(
	"GetAssignmentHistoryQuery must be created via NewGetAssignmentHistoryQuery constructor",
)

// GetAssignmentHistoryQuery requests the full handover trail of one order,
// newest first.
type GetAssignmentHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignmentHistoryQuery creates a validated history query.
func NewGetAssignmentHistoryQuery(orderID kernel.UUID) (GetAssignmentHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAssignmentHistoryQuery{}, err
	}
	return GetAssignmentHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose trail is requested.
func (q *GetAssignmentHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q *GetAssignmentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentHistoryQueryIsNotConstructed)
}

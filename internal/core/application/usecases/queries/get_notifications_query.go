package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery requests journal entries, newest first. A
// non-positive limit returns the whole journal.
type GetNotificationsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates the query.
func NewGetNotificationsQuery(limit int) GetNotificationsQuery {
	return GetNotificationsQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}
}

// Limit returns the requested maximum; non-positive means all.
func (q *GetNotificationsQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q *GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

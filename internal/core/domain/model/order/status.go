package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the backend's order lifecycle vocabulary. The dispatch core never
// advances this lifecycle on its own; it only reads it and issues explicit
// status-mutation commands on behalf of dispatchers.
//
// Lifecycle:
//
//	pending -> confirmed -> preparing -> ready -> delivered
//	                                 \-> cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// AllStatuses lists every valid backend order status.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusReady,
		StatusDelivered,
		StatusCancelled,
	}
}

// Validate checks that the status is one of the backend vocabulary values.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%q is not a valid order status", string(s)))
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

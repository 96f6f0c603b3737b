package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the five-state field-facing delivery lifecycle.
//
// Field agents walk a strict linear path with exactly one legal next state:
//
//	assigned -> picked_up -> in_transit -> delivered
//
// delayed is terminal and reachable only through the backend's cancelled
// mapping or a dispatcher override; delivered and delayed have no outgoing
// transitions.
type Status string

const (
	StatusAssigned  Status = "assigned"
	StatusPickedUp  Status = "picked_up"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusDelayed   Status = "delayed"
)

// AllStatuses lists every valid delivery status.
func AllStatuses() []Status {
	return []Status{
		StatusAssigned,
		StatusPickedUp,
		StatusInTransit,
		StatusDelivered,
		StatusDelayed,
	}
}

// Validate checks that the status is one of the delivery vocabulary values.
func (s Status) Validate() error {
	switch s {
	case StatusAssigned, StatusPickedUp, StatusInTransit, StatusDelivered, StatusDelayed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%q is not a valid delivery status", string(s)))
	}
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusDelayed
}

// NextForAgent returns the single legal next state on the field-agent path.
// The second return value is false for terminal states and delayed.
func (s Status) NextForAgent() (Status, bool) {
	switch s {
	case StatusAssigned:
		return StatusPickedUp, true
	case StatusPickedUp:
		return StatusInTransit, true
	case StatusInTransit:
		return StatusDelivered, true
	default:
		return "", false
	}
}

// TransitionForAgent validates the strict field-agent table: from each state
// exactly one target is legal. Any other request is rejected with a
// TransitionError before any network call is issued.
func (s Status) TransitionForAgent(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	next, ok := s.NextForAgent()
	if !ok || target != next {
		return "", errs.NewTransitionError(string(s), string(target))
	}
	return target, nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

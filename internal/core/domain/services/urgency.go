package services

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
)

// Urgency is the derived classification of an order, independent of the
// operator-set priority tag.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyCritical Urgency = "critical"
)

// Weight returns the ordinal contribution of the tier to the priority score:
// critical 3, urgent 2, normal 0.
func (u Urgency) Weight() int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyUrgent:
		return 2
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (u Urgency) String() string {
	return string(u)
}

// Classification thresholds.
const (
	unassignedCriticalAge = time.Hour
	unassignedUrgentAge   = 30 * time.Minute
	deadlineUrgentWindow  = 2 * time.Hour
	assignedUrgentAge     = 30 * time.Minute
)

// ClassifyUrgency derives the urgency tier for an order. asg is the current
// assignment or nil when the order is unassigned.
//
// Rule blocks are evaluated in fixed order and the first matching block
// returns immediately; later blocks are never consulted once an earlier one
// has matched, even when they would be more severe. This first-match
// precedence reproduces the observed production behavior and must not be
// replaced with max-severity aggregation: doing so would change visible
// prioritization.
func ClassifyUrgency(o *order.Order, asg *delivery.Assignment, now time.Time) Urgency {
	derived := ToDeliveryStatus(o.Status)

	// Block 1: unassigned order sitting in the assignable state.
	if asg == nil && derived == delivery.StatusAssigned {
		age := o.Age(now)
		if age > unassignedCriticalAge {
			return UrgencyCritical
		}
		if age > unassignedUrgentAge {
			return UrgencyUrgent
		}
	}

	// Block 2: delivery deadline from date plus first parsed HH:MM.
	if deadline, ok := o.DeliveryDeadline(); ok {
		if !deadline.After(now) {
			return UrgencyCritical
		}
		if deadline.Sub(now) <= deadlineUrgentWindow {
			return UrgencyUrgent
		}
	}

	// Block 3: assigned but not yet picked up for too long.
	if asg != nil && asg.Status() == delivery.StatusAssigned {
		if asg.Age(now) > assignedUrgentAge {
			return UrgencyUrgent
		}
	}

	return UrgencyNormal
}

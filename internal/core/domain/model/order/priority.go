package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Priority is the explicit, operator-set importance tag stored on an order.
// It is independent of the derived urgency tier.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when the backend record carries no tag.
const DefaultPriority = PriorityMedium

// Weight returns the ordinal contribution of the tag to the priority score:
// high 3, medium 2, low 1. Unknown tags weigh as medium.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Validate checks that the priority is one of the known tags.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%q is not a valid priority tag", string(p)))
	}
}

// NormalizePriority maps an empty or unknown tag to DefaultPriority.
func NormalizePriority(p Priority) Priority {
	if p.Validate() != nil {
		return DefaultPriority
	}
	return p
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}

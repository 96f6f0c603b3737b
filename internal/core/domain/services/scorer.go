package services

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
)

// PriorityScore combines the derived urgency tier and the explicit priority
// tag into one ordinal score:
//
//	score = urgencyWeight*10 + priorityWeight
//
// Higher means more urgent/important. The function is deterministic and total
// over the domain; the range is 0..33 with score(critical, high) = 33 at the
// top and score(normal, low) = 1 at the bottom of the normal tier.
func PriorityScore(u Urgency, p order.Priority) int {
	return u.Weight()*10 + p.Weight()
}

// ScoreOrder classifies and scores in one step, as used by the ranking sort.
func ScoreOrder(o *order.Order, asg *delivery.Assignment, now time.Time) int {
	return PriorityScore(ClassifyUrgency(o, asg, now), order.NormalizePriority(o.Priority))
}

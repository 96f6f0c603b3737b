package services

import (
	"sort"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AssignmentFilter narrows the list by assignment presence.
type AssignmentFilter string

const (
	FilterAll        AssignmentFilter = "all"
	FilterAssigned   AssignmentFilter = "assigned"
	FilterUnassigned AssignmentFilter = "unassigned"
)

// SortMode selects the list ordering. Priority is the multi-key dispatch sort;
// the other modes are single-key with source-order stability.
type SortMode string

const (
	SortPriority SortMode = "priority"
	SortNewest   SortMode = "newest"
	SortOldest   SortMode = "oldest"
	SortTotal    SortMode = "total"
	SortCustomer SortMode = "customer"
)

// ListCriteria are the conjunctive filters applied to the ranked set.
// Zero values mean "no filter".
type ListCriteria struct {
	// Status filters on the mapped delivery vocabulary. Empty keeps every
	// status except delivered: delivered orders leave the active ranking set.
	Status delivery.Status
	// Assignment filters by assignment presence. Empty behaves as FilterAll.
	Assignment AssignmentFilter
	// Search is a case-insensitive substring matched against order number,
	// customer name, formatted address, and assigned agent name.
	Search string
}

// RankedOrder is one order annotated with its assignment, mapped delivery
// status, urgency tier, and priority score.
type RankedOrder struct {
	Order          *order.Order
	Assignment     *delivery.Assignment
	DeliveryStatus delivery.Status
	Urgency        Urgency
	Score          int
}

// Rank annotates every order with its derived delivery status, urgency tier,
// and priority score at the given instant. assignments is keyed by order ID;
// orders without an entry are treated as unassigned.
func Rank(orders []*order.Order, assignments map[kernel.UUID]delivery.Assignment, now time.Time) []RankedOrder {
	ranked := make([]RankedOrder, 0, len(orders))
	for _, o := range orders {
		var asg *delivery.Assignment
		if a, ok := assignments[o.ID]; ok {
			copied := a
			asg = &copied
		}

		status := ToDeliveryStatus(o.Status)
		if asg != nil {
			status = asg.Status()
		}

		urgency := ClassifyUrgency(o, asg, now)
		ranked = append(ranked, RankedOrder{
			Order:          o,
			Assignment:     asg,
			DeliveryStatus: status,
			Urgency:        urgency,
			Score:          PriorityScore(urgency, order.NormalizePriority(o.Priority)),
		})
	}
	return ranked
}

// Filter applies the conjunctive criteria and returns the surviving entries in
// source order.
func Filter(ranked []RankedOrder, criteria ListCriteria) []RankedOrder {
	needle := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]RankedOrder, 0, len(ranked))
	for _, r := range ranked {
		if criteria.Status != "" {
			if r.DeliveryStatus != criteria.Status {
				continue
			}
		} else if r.DeliveryStatus == delivery.StatusDelivered {
			continue
		}

		switch criteria.Assignment {
		case FilterAssigned:
			if r.Assignment == nil {
				continue
			}
		case FilterUnassigned:
			if r.Assignment != nil {
				continue
			}
		}

		if needle != "" && !matchesSearch(r, needle) {
			continue
		}

		out = append(out, r)
	}
	return out
}

// matchesSearch succeeds when any searchable field contains the lowercased term.
func matchesSearch(r RankedOrder, needle string) bool {
	fields := []string{
		r.Order.Number,
		r.Order.CustomerName,
		r.Order.Address.Formatted(),
	}
	if r.Assignment != nil {
		fields = append(fields, r.Assignment.AgentName())
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Sort orders the ranked set in place. The priority mode applies the full
// multi-key comparator; every other mode is a stable single-key sort.
func Sort(ranked []RankedOrder, mode SortMode) {
	switch mode {
	case SortNewest:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Order.CreatedAt.After(ranked[j].Order.CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Order.CreatedAt.Before(ranked[j].Order.CreatedAt)
		})
	case SortTotal:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Order.Total > ranked[j].Order.Total
		})
	case SortCustomer:
		sort.SliceStable(ranked, func(i, j int) bool {
			return strings.ToLower(ranked[i].Order.CustomerName) < strings.ToLower(ranked[j].Order.CustomerName)
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return lessByPriority(ranked[i], ranked[j])
		})
	}
}

// lessByPriority is the dispatch comparator. Keys in order, each a tie-break
// for the previous:
//  1. priority score, descending
//  2. delivery deadline (date, then first parsed time), ascending; orders
//     without a deadline sort after those with one
//  3. unassigned before assigned
//  4. creation timestamp, ascending
func lessByPriority(a, b RankedOrder) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}

	if less, decided := lessByDeadline(a.Order, b.Order); decided {
		return less
	}

	aUnassigned := a.Assignment == nil
	bUnassigned := b.Assignment == nil
	if aUnassigned != bUnassigned {
		return aUnassigned
	}

	return a.Order.CreatedAt.Before(b.Order.CreatedAt)
}

// lessByDeadline compares delivery date ascending, then the first parsed
// time-range clock time ascending. Orders missing a date (or a parsable time
// when dates tie) sort after those that have one. decided is false when the
// key cannot break the tie.
func lessByDeadline(a, b *order.Order) (less, decided bool) {
	aHasDate := a.DeliveryDate != nil
	bHasDate := b.DeliveryDate != nil
	if aHasDate != bHasDate {
		return aHasDate, true
	}
	if !aHasDate {
		return false, false
	}

	aDay := a.DeliveryDate.Truncate(24 * time.Hour)
	bDay := b.DeliveryDate.Truncate(24 * time.Hour)
	if !aDay.Equal(bDay) {
		return aDay.Before(bDay), true
	}

	aTod, aOK := kernel.ParseFirstTimeOfDay(a.TimeRange)
	bTod, bOK := kernel.ParseFirstTimeOfDay(b.TimeRange)
	if aOK != bOK {
		return aOK, true
	}
	if !aOK {
		return false, false
	}

	aMinutes := aTod.Hour()*60 + aTod.Minute()
	bMinutes := bTod.Hour()*60 + bTod.Minute()
	if aMinutes != bMinutes {
		return aMinutes < bMinutes, true
	}
	return false, false
}

package sync

import (
	"sync"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Snapshot is the in-memory view of orders and assignments owned exclusively
// by the dispatch core. Each refresh applies as a wholesale replace: there is
// no field-level merge. A monotonic sequence number guards against an
// earlier-issued refresh overwriting the result of a later one.
type Snapshot struct {
	mu          sync.RWMutex
	appliedSeq  uint64
	orders      []*order.Order
	assignments map[kernel.UUID]delivery.Assignment
	fetchedAt   time.Time
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		assignments: make(map[kernel.UUID]delivery.Assignment),
	}
}

// Replace swaps the whole view. seq is the sequence number taken when the
// refresh was issued; applications that would regress the view (seq older
// than the last applied one) are rejected and the method returns false.
func (s *Snapshot) Replace(seq uint64, orders []*order.Order, assignments map[kernel.UUID]delivery.Assignment, fetchedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.appliedSeq {
		return false
	}
	if assignments == nil {
		assignments = make(map[kernel.UUID]delivery.Assignment)
	}

	s.appliedSeq = seq
	s.orders = orders
	s.assignments = assignments
	s.fetchedAt = fetchedAt
	return true
}

// Orders returns the current order list. The slice is copied; the pointed-to
// orders are treated as immutable read models.
func (s *Snapshot) Orders() []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Assignments returns a copy of the current order-to-agent bindings.
func (s *Snapshot) Assignments() map[kernel.UUID]delivery.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[kernel.UUID]delivery.Assignment, len(s.assignments))
	for k, v := range s.assignments {
		out[k] = v
	}
	return out
}

// Order looks up one order by id.
func (s *Snapshot) Order(id kernel.UUID) (*order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID.IsEqual(id) {
			return o, true
		}
	}
	return nil, false
}

// Assignment looks up the active binding for an order.
func (s *Snapshot) Assignment(orderID kernel.UUID) (delivery.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assignments[orderID]
	return a, ok
}

// FetchedAt returns when the current view was fetched; zero before the first
// applied refresh.
func (s *Snapshot) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

package delivery

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// HistoryEntry is one immutable, append-only record of an assignment or
// reassignment. The previous agent is nil only for the very first assignment
// of an order; entries are never mutated or deleted.
type HistoryEntry struct {
	OrderID           kernel.UUID
	PreviousAgentID   *kernel.UUID
	PreviousAgentName string
	NewAgentID        kernel.UUID
	NewAgentName      string
	Reason            string
	CreatedAt         time.Time
}

// IsReassignment reports whether the entry superseded an earlier binding.
func (h HistoryEntry) IsReassignment() bool {
	return h.PreviousAgentID != nil
}

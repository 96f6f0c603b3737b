package notifications

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"
)

// DefaultJournalCapacity bounds the journal when no capacity is configured.
const DefaultJournalCapacity = 50

// InMemoryJournal is a bounded, append-only notification store. When capacity
// is exceeded the oldest entries are discarded. It backs tests and
// single-process deployments; the gorm repository provides the durable
// variant.
type InMemoryJournal struct {
	mu       sync.Mutex
	capacity int
	entries  []notification.Notification
}

// NewInMemoryJournal creates a journal bounded to capacity entries.
// Non-positive capacities fall back to DefaultJournalCapacity.
func NewInMemoryJournal(capacity int) *InMemoryJournal {
	if capacity <= 0 {
		capacity = DefaultJournalCapacity
	}
	return &InMemoryJournal{capacity: capacity}
}

// Append stores a notification, discarding the oldest entry when full.
func (j *InMemoryJournal) Append(_ context.Context, n notification.Notification) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, n)
	if len(j.entries) > j.capacity {
		j.entries = j.entries[len(j.entries)-j.capacity:]
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (j *InMemoryJournal) List(_ context.Context, limit int) ([]notification.Notification, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	n := len(j.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]notification.Notification, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, j.entries[i])
	}
	return out, nil
}

// MarkRead sets the read marker on one entry.
func (j *InMemoryJournal) MarkRead(_ context.Context, id kernel.UUID) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	for i := range j.entries {
		if j.entries[i].ID.IsEqual(id) {
			if j.entries[i].ReadAt == nil {
				j.entries[i].ReadAt = &now
			}
			return nil
		}
	}
	return errs.NewObjectNotFoundError("notificationID", id.String())
}

// MarkAllRead sets the read marker on every unread entry and returns how many
// were updated.
func (j *InMemoryJournal) MarkAllRead(_ context.Context) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	var updated int64
	for i := range j.entries {
		if j.entries[i].ReadAt == nil {
			j.entries[i].ReadAt = &now
			updated++
		}
	}
	return updated, nil
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
)

// NotificationJournal is the bounded append-only store behind the
// deduplicator. Implementations keep at most their configured capacity,
// discarding the oldest entries first.
type NotificationJournal interface {
	Append(ctx context.Context, n notification.Notification) error
	List(ctx context.Context, limit int) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id kernel.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

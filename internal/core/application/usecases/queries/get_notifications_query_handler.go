package queries

import (
	"context"

	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/core/ports"
)

// GetNotificationsQueryHandler reads from the local notification journal.
type GetNotificationsQueryHandler struct {
	journal ports.NotificationJournal
}

// NewGetNotificationsQueryHandler creates the handler.
func NewGetNotificationsQueryHandler(journal ports.NotificationJournal) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{journal: journal}
}

// Handle lists journal entries, newest first.
func (h GetNotificationsQueryHandler) Handle(ctx context.Context, query GetNotificationsQuery) ([]notification.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.journal.List(ctx, query.Limit())
}

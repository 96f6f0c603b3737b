package notificationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
)

// NotificationDTO is the journal row. UUIDs are stored as their canonical
// string form so the same schema works on sqlite and postgres.
type NotificationDTO struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Kind        string `gorm:"type:varchar(32);not null"`
	OrderID     string `gorm:"type:varchar(36);not null;index"`
	OrderNumber string
	OldStatus   string
	NewStatus   string
	Message     string
	CreatedAt   time.Time `gorm:"index"`
	ReadAt      *time.Time
}

// TableName overrides GORM's default naming.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID.String(),
		Kind:        string(n.Kind),
		OrderID:     n.OrderID.String(),
		OrderNumber: n.OrderNumber,
		OldStatus:   string(n.OldStatus),
		NewStatus:   string(n.NewStatus),
		Message:     n.Message,
		CreatedAt:   n.CreatedAt,
		ReadAt:      n.ReadAt,
	}
}

func toDomain(dto NotificationDTO) (notification.Notification, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return notification.Notification{}, err
	}
	orderID, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return notification.Notification{}, err
	}

	return notification.Notification{
		ID:          id,
		Kind:        notification.Kind(dto.Kind),
		OrderID:     orderID,
		OrderNumber: dto.OrderNumber,
		OldStatus:   delivery.Status(dto.OldStatus),
		NewStatus:   delivery.Status(dto.NewStatus),
		Message:     dto.Message,
		CreatedAt:   dto.CreatedAt,
		ReadAt:      dto.ReadAt,
	}, nil
}

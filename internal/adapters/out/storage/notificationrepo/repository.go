// Package notificationrepo persists the notification journal through GORM.
// It enforces the same bounded-capacity contract as the in-memory journal:
// appends beyond capacity evict the oldest rows.
package notificationrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/notifications"
	"dispatch/internal/pkg/errs"
)

// Repository is the durable notification journal. It implements
// ports.NotificationJournal.
type Repository struct {
	db       *gorm.DB
	capacity int
}

// NewRepository creates the journal and migrates its table. Non-positive
// capacities fall back to the default journal capacity.
func NewRepository(db *gorm.DB, capacity int) (*Repository, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	if capacity <= 0 {
		capacity = notifications.DefaultJournalCapacity
	}
	if err := db.AutoMigrate(&NotificationDTO{}); err != nil {
		return nil, err
	}
	return &Repository{db: db, capacity: capacity}, nil
}

// Append stores a notification and evicts the oldest rows beyond capacity.
func (r *Repository) Append(ctx context.Context, n notification.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fromDomain(n)).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&NotificationDTO{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= int64(r.capacity) {
			return nil
		}

		overflow := int(count) - r.capacity
		oldest := tx.Model(&NotificationDTO{}).
			Select("id").
			Order("created_at asc, id asc").
			Limit(overflow)
		return tx.Where("id IN (?)", oldest).Delete(&NotificationDTO{}).Error
	})
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (r *Repository) List(ctx context.Context, limit int) ([]notification.Notification, error) {
	query := r.db.WithContext(ctx).Order("created_at desc, id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []NotificationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	out := make([]notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkRead sets the read marker on one entry.
func (r *Repository) MarkRead(ctx context.Context, id kernel.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND read_at IS NULL", id.String()).
		Update("read_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Distinguish already-read from missing.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.String()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("notificationID", id.String())
	}
	return nil
}

// MarkAllRead sets the read marker on every unread entry.
func (r *Repository) MarkAllRead(ctx context.Context) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("read_at IS NULL").
		Update("read_at", &now)
	return result.RowsAffected, result.Error
}

package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) (*Repo, error) {
	if client == nil {
		return nil, errors.New("notifications repo: db client is required")
	}
	return &Repo{client: client}, nil
}

func (r *Repo) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.client.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := r.client.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (r *Repo) MarkRead(ctx context.Context, userID, notificationID uuid.UUID, at time.Time) error {
	result := r.client.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", at)
	if result.Error != nil {
		return fmt.Errorf("mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var existing models.Notification
		err := r.client.WithContext(ctx).
			First(&existing, "id = ? AND user_id = ?", notificationID, userID).Error
		if err != nil {
			if db.IsNotFound(err) {
				return apperrors.New(apperrors.CodeNotFound, "notification not found")
			}
			return fmt.Errorf("find notification: %w", err)
		}
		// Already read; marking again is harmless.
	}
	return nil
}

func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if err := r.client.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at).Error; err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.client.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

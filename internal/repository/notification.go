package repository

import (
	"context"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

func (r *notificationRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Notification, error) {
	var result []entity.Notification
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND is_read=?", userID, false).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("user_id=? AND is_read=?", userID, false).
		Update("is_read", true).Error
}

package domain

import (
	"context"

	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

type NotificationDomain interface {
	GetNotifications(ctx context.Context, req *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, req *model.MarkNotificationsReadRequest) (*model.MarkNotificationsReadResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) *notificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetNotifications(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	cfg := xcontext.Configs(ctx).ApiServer
	limit := req.Limit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	notifications, err := d.notificationRepo.GetListByUserID(ctx, userID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	unread, err := d.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Notification, 0, len(notifications))
	for i := range notifications {
		result = append(result, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{Notifications: result, Unread: unread}, nil
}

func (d *notificationDomain) MarkRead(
	ctx context.Context, req *model.MarkNotificationsReadRequest,
) (*model.MarkNotificationsReadResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if err := d.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notifications read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MarkNotificationsReadResponse{}, nil
}

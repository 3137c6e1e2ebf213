package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/internal/domain/notification/event"
	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/pubsub"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"gorm.io/gorm"
)

const photoLastMessage = "📷 Photo"

// DeriveThreadID maps an unordered pair of user ids to a stable thread id,
// so both participants always address the same thread.
func DeriveThreadID(a, b string) string {
	if strings.Compare(a, b) < 0 {
		return a + "_" + b
	}

	return b + "_" + a
}

type ChatDomain interface {
	GetThreads(ctx context.Context, req *model.GetThreadsRequest) (*model.GetThreadsResponse, error)
	OpenThread(ctx context.Context, req *model.OpenThreadRequest) (*model.OpenThreadResponse, error)
	SendMessage(ctx context.Context, req *model.SendMessageRequest) (*model.SendMessageResponse, error)
	EditMessage(ctx context.Context, req *model.EditMessageRequest) (*model.EditMessageResponse, error)
	DeleteMessage(ctx context.Context, req *model.DeleteMessageRequest) (*model.DeleteMessageResponse, error)
	GetMessages(ctx context.Context, req *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
}

type chatDomain struct {
	threadRepo  repository.ChatThreadRepository
	messageRepo repository.ChatMessageRepository
	userRepo    repository.UserRepository
	publisher   pubsub.Publisher
}

func NewChatDomain(
	threadRepo repository.ChatThreadRepository,
	messageRepo repository.ChatMessageRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *chatDomain {
	return &chatDomain{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func (d *chatDomain) GetThreads(ctx context.Context, req *model.GetThreadsRequest) (*model.GetThreadsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	threads, err := d.threadRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get threads: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.ChatThread, 0, len(threads))
	for i := range threads {
		result = append(result, model.ConvertChatThread(&threads[i]))
	}

	return &model.GetThreadsResponse{Threads: result}, nil
}

// OpenThread creates or refreshes the thread between the requesting user and
// req.UserID. The upsert merges the participant snapshot into an existing
// thread instead of replacing it, so the last message survives reopening.
func (d *chatDomain) OpenThread(ctx context.Context, req *model.OpenThreadRequest) (*model.OpenThreadResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if req.UserID == "" || req.UserID == userID {
		return nil, errorx.New(errorx.BadRequest, "Not found a valid user id")
	}

	other, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	me, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	thread := &entity.ChatThread{
		ID:           DeriveThreadID(userID, other.ID),
		Participants: entity.Array[string]{userID, other.ID},
		Users: entity.Map{
			me.ID:    map[string]any{"name": me.Name, "avatar_url": me.AvatarURL},
			other.ID: map[string]any{"name": other.Name, "avatar_url": other.AvatarURL},
		},
		UpdatedAt: time.Now(),
	}
	if err := d.threadRepo.Upsert(ctx, thread); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert thread: %v", err)
		return nil, errorx.Unknown
	}

	stored, err := d.threadRepo.GetByID(ctx, thread.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get thread: %v", err)
		return nil, errorx.Unknown
	}

	return &model.OpenThreadResponse{Thread: model.ConvertChatThread(stored)}, nil
}

func (d *chatDomain) SendMessage(ctx context.Context, req *model.SendMessageRequest) (*model.SendMessageResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	content := strings.TrimSpace(req.Content)
	if content == "" && req.ImageURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty message")
	}

	thread, err := d.getMemberThread(ctx, req.ThreadID, userID)
	if err != nil {
		return nil, err
	}

	message := &entity.ChatMessage{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		ThreadID:      thread.ID,
		SenderID:      userID,
		Content:       content,
		ImageURL:      req.ImageURL,
		CreatedAt:     time.Now(),
	}

	lastMessage := content
	if req.ImageURL != "" {
		lastMessage = photoLastMessage
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.threadRepo.UpdateLastMessage(ctx, thread.ID, lastMessage); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update last message: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	converted := model.ConvertChatMessage(message)
	for _, participant := range thread.Participants {
		if participant == userID {
			continue
		}

		ev := event.New((*event.MessageCreatedEvent)(&converted), event.Metadata{To: participant})
		if b, err := json.Marshal(ev); err == nil {
			err := d.publisher.Publish(ctx, model.ChatMessageTopic, &pubsub.Pack{
				Key: []byte(thread.ID),
				Msg: b,
			})
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot publish message event: %v", err)
			}
		}
	}

	return &model.SendMessageResponse{Message: converted}, nil
}

func (d *chatDomain) GetMessages(ctx context.Context, req *model.GetMessagesRequest) (*model.GetMessagesResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	thread, err := d.getMemberThread(ctx, req.ThreadID, userID)
	if err != nil {
		return nil, err
	}

	cfg := xcontext.Configs(ctx).ApiServer
	limit := req.Limit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	messages, err := d.messageRepo.GetListByThreadID(ctx, thread.ID, req.LastMessageID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.ChatMessage, 0, len(messages))
	for i := range messages {
		result = append(result, model.ConvertChatMessage(&messages[i]))
	}

	return &model.GetMessagesResponse{Messages: result}, nil
}

func (d *chatDomain) EditMessage(ctx context.Context, req *model.EditMessageRequest) (*model.EditMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.BadRequest, "Message cannot be empty")
	}

	message, err := d.getSenderMessage(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}

	if err := d.messageRepo.UpdateContent(ctx, message.ID, content); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update message: %v", err)
		return nil, errorx.Unknown
	}

	message.Content = content
	return &model.EditMessageResponse{Message: model.ConvertChatMessage(message)}, nil
}

func (d *chatDomain) DeleteMessage(ctx context.Context, req *model.DeleteMessageRequest) (*model.DeleteMessageResponse, error) {
	message, err := d.getSenderMessage(ctx, req.MessageID)
	if err != nil {
		return nil, err
	}

	if err := d.messageRepo.Delete(ctx, message.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteMessageResponse{}, nil
}

// getSenderMessage resolves a message id and ensures the requesting user is
// its sender.
func (d *chatDomain) getSenderMessage(ctx context.Context, messageID string) (*entity.ChatMessage, error) {
	id, err := strconv.ParseInt(messageID, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid message id")
	}

	message, err := d.messageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot get message: %v", err)
		return nil, errorx.Unknown
	}

	if message.SenderID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the sender can modify a message")
	}

	return message, nil
}

func (d *chatDomain) getMemberThread(ctx context.Context, threadID, userID string) (*entity.ChatThread, error) {
	if threadID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found thread id")
	}

	thread, err := d.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found thread")
		}

		xcontext.Logger(ctx).Errorf("Cannot get thread: %v", err)
		return nil, errorx.Unknown
	}

	for _, participant := range thread.Participants {
		if participant == userID {
			return thread, nil
		}
	}

	return nil, errorx.New(errorx.PermissionDenied, "You are not in this thread")
}

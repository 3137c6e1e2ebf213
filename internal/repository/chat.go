package repository

import (
	"context"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ChatThreadRepository interface {
	// Upsert creates the thread or refreshes its participant snapshot
	// and updated_at, leaving last_message untouched.
	Upsert(ctx context.Context, thread *entity.ChatThread) error
	GetByID(ctx context.Context, id string) (*entity.ChatThread, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.ChatThread, error)
	UpdateLastMessage(ctx context.Context, id, lastMessage string) error
}

type chatThreadRepository struct{}

func NewChatThreadRepository() *chatThreadRepository {
	return &chatThreadRepository{}
}

func (r *chatThreadRepository) Upsert(ctx context.Context, thread *entity.ChatThread) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"participants", "users", "updated_at"}),
		}).
		Create(thread).Error
}

func (r *chatThreadRepository) GetByID(ctx context.Context, id string) (*entity.ChatThread, error) {
	var result entity.ChatThread
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatThreadRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.ChatThread, error) {
	var result []entity.ChatThread
	err := xcontext.DB(ctx).
		Where("participants LIKE ?", `%"`+userID+`"%`).
		Order("updated_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatThreadRepository) UpdateLastMessage(ctx context.Context, id, lastMessage string) error {
	return xcontext.DB(ctx).
		Model(&entity.ChatThread{}).
		Where("id=?", id).
		Updates(map[string]any{
			"last_message": lastMessage,
			"updated_at":   time.Now(),
		}).Error
}

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	GetByID(ctx context.Context, id int64) (*entity.ChatMessage, error)
	GetListByThreadID(ctx context.Context, threadID string, lastMessageID int64, limit int) ([]entity.ChatMessage, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type chatMessageRepository struct{}

func NewChatMessageRepository() *chatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	return xcontext.DB(ctx).Create(message).Error
}

func (r *chatMessageRepository) GetByID(ctx context.Context, id int64) (*entity.ChatMessage, error) {
	var result entity.ChatMessage
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatMessageRepository) GetListByThreadID(
	ctx context.Context, threadID string, lastMessageID int64, limit int,
) ([]entity.ChatMessage, error) {
	var result []entity.ChatMessage
	tx := xcontext.DB(ctx).
		Where("thread_id=?", threadID).
		Order("id ASC").
		Limit(limit)

	if lastMessageID > 0 {
		tx = tx.Where("id > ?", lastMessageID)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatMessageRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	return xcontext.DB(ctx).
		Model(&entity.ChatMessage{}).
		Where("id=?", id).
		Update("content", content).Error
}

func (r *chatMessageRepository) Delete(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.ChatMessage{}).Error
}

package repository

import (
	"context"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetListByPostID(ctx context.Context, postID string) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("post_id=?", postID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) error {
	return xcontext.DB(ctx).
		Model(&entity.Comment{}).
		Where("id=?", id).
		Update("content", content).Error
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Comment{}).Error
}

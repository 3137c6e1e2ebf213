package repository

import (
	"context"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Post, error)
	GetListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]entity.Post, error)
	GetListByAuthor(ctx context.Context, authorID string) ([]entity.Post, error)
	UpdateCaption(ctx context.Context, id, caption string) error
	UpdateLikes(ctx context.Context, id string, likes entity.Array[string]) error
	UpdateAuthorInfo(ctx context.Context, authorID, name, avatar string) error
	Delete(ctx context.Context, id string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return xcontext.DB(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Where("author_id IN (?)", authorIDs).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetListByAuthor(ctx context.Context, authorID string) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Where("author_id=?", authorID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) UpdateCaption(ctx context.Context, id, caption string) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("caption", caption).Error
}

func (r *postRepository) UpdateLikes(ctx context.Context, id string, likes entity.Array[string]) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Update("likes", likes).Error
}

func (r *postRepository) UpdateAuthorInfo(ctx context.Context, authorID, name, avatar string) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("author_id=?", authorID).
		Updates(map[string]any{
			"author_name":   name,
			"author_avatar": avatar,
		}).Error
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Post{}).Error
}

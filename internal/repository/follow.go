package repository

import (
	"context"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// FollowRepository manages the two mirrored follow tables. Every
// mutation touches exactly one table; callers decide in which order
// the mirrors are written.
type FollowRepository interface {
	CreateFollowing(ctx context.Context, data *entity.Following) error
	DeleteFollowing(ctx context.Context, userID, targetID string) error
	GetFollowing(ctx context.Context, userID, targetID string) (*entity.Following, error)
	GetFollowingList(ctx context.Context, userID string) ([]entity.Following, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)

	CreateFollower(ctx context.Context, data *entity.Follower) error
	DeleteFollower(ctx context.Context, userID, followerID string) error
	GetFollowerList(ctx context.Context, userID string) ([]entity.Follower, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) CreateFollowing(ctx context.Context, data *entity.Following) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data).Error
}

func (r *followRepository) DeleteFollowing(ctx context.Context, userID, targetID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND target_id=?", userID, targetID).
		Delete(&entity.Following{}).Error
}

func (r *followRepository) GetFollowing(ctx context.Context, userID, targetID string) (*entity.Following, error) {
	var result entity.Following
	err := xcontext.DB(ctx).
		Where("user_id=? AND target_id=?", userID, targetID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) GetFollowingList(ctx context.Context, userID string) ([]entity.Following, error) {
	var result []entity.Following
	err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Following{}).
		Where("user_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *followRepository) CreateFollower(ctx context.Context, data *entity.Follower) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data).Error
}

func (r *followRepository) DeleteFollower(ctx context.Context, userID, followerID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND follower_id=?", userID, followerID).
		Delete(&entity.Follower{}).Error
}

func (r *followRepository) GetFollowerList(ctx context.Context, userID string) ([]entity.Follower, error) {
	var result []entity.Follower
	err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("user_id=?", userID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Ltinterdonato1/BlinkShare/internal/common"
	"github.com/Ltinterdonato1/BlinkShare/internal/domain/notification/event"
	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/pubsub"
	"github.com/Ltinterdonato1/BlinkShare/pkg/storage"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const globalFeedLimit = 20

type PostDomain interface {
	CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetFeed(ctx context.Context, req *model.GetFeedRequest) (*model.GetFeedResponse, error)
	GetPost(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error)
	GetUserPosts(ctx context.Context, req *model.GetUserPostsRequest) (*model.GetUserPostsResponse, error)
	ToggleLike(ctx context.Context, req *model.ToggleLikeRequest) (*model.ToggleLikeResponse, error)
	UpdatePost(ctx context.Context, req *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	DeletePost(ctx context.Context, req *model.DeletePostRequest) (*model.DeletePostResponse, error)
	UploadImage(ctx context.Context, req *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type postDomain struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	notificationRepo repository.NotificationRepository
	publisher        pubsub.Publisher
	fileStorage      storage.Storage
}

func NewPostDomain(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notificationRepo repository.NotificationRepository,
	publisher pubsub.Publisher,
	fileStorage storage.Storage,
) *postDomain {
	return &postDomain{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		userRepo:         userRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
		fileStorage:      fileStorage,
	}
}

func (d *postDomain) CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.CreatePostResponse, error) {
	if req.ImageURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty image")
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	post := &entity.Post{
		Base:         entity.Base{ID: uuid.NewString()},
		AuthorID:     user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.AvatarURL,
		ImageURL:     req.ImageURL,
		Caption:      strings.TrimSpace(req.Caption),
		Likes:        entity.Array[string]{},
	}
	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{Post: model.ConvertPost(post, userID, 0)}, nil
}

// GetFeed returns the posts of followed authors plus the viewer's own. A
// viewer who follows nobody gets the latest posts of the whole network
// instead of an empty page.
func (d *postDomain) GetFeed(ctx context.Context, req *model.GetFeedRequest) (*model.GetFeedResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	following, err := d.followRepo.GetFollowingList(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).ApiServer
	limit := req.Limit
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	var posts []entity.Post
	if len(following) == 0 {
		posts, err = d.postRepo.GetList(ctx, 0, globalFeedLimit)
	} else {
		authors := make([]string, 0, len(following)+1)
		authors = append(authors, userID)
		for _, f := range following {
			authors = append(authors, f.TargetID)
		}

		posts, err = d.postRepo.GetListByAuthors(ctx, authors, req.Offset, limit)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed posts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFeedResponse{Posts: d.convertPosts(ctx, posts, userID)}, nil
}

func (d *postDomain) GetPost(ctx context.Context, req *model.GetPostRequest) (*model.GetPostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	commentModels := make([]model.Comment, 0, len(comments))
	for i := range comments {
		commentModels = append(commentModels, model.ConvertComment(&comments[i]))
	}

	return &model.GetPostResponse{
		Post:     model.ConvertPost(post, xcontext.RequestUserID(ctx), int64(len(comments))),
		Comments: commentModels,
	}, nil
}

func (d *postDomain) GetUserPosts(ctx context.Context, req *model.GetUserPostsRequest) (*model.GetUserPostsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found user id")
	}

	posts, err := d.postRepo.GetListByAuthor(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserPostsResponse{
		Posts: d.convertPosts(ctx, posts, xcontext.RequestUserID(ctx)),
	}, nil
}

func (d *postDomain) ToggleLike(ctx context.Context, req *model.ToggleLikeRequest) (*model.ToggleLikeResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	liked := false
	likes := make(entity.Array[string], 0, len(post.Likes)+1)
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			continue
		}

		likes = append(likes, id)
	}

	if !liked {
		likes = append(likes, userID)
	}

	if err := d.postRepo.UpdateLikes(ctx, post.ID, likes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update likes: %v", err)
		return nil, errorx.Unknown
	}

	if !liked && post.AuthorID != userID {
		d.notifyAuthor(ctx, post, userID, entity.LikeNotification, "")
	}

	return &model.ToggleLikeResponse{Liked: !liked, Likes: int64(len(likes))}, nil
}

func (d *postDomain) UpdatePost(ctx context.Context, req *model.UpdatePostRequest) (*model.UpdatePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update a post")
	}

	caption := strings.TrimSpace(req.Caption)
	if err := d.postRepo.UpdateCaption(ctx, post.ID, caption); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update caption: %v", err)
		return nil, errorx.Unknown
	}

	post.Caption = caption
	comments, err := d.commentRepo.CountByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot count comments: %v", err)
	}

	return &model.UpdatePostResponse{
		Post: model.ConvertPost(post, xcontext.RequestUserID(ctx), comments),
	}, nil
}

func (d *postDomain) DeletePost(ctx context.Context, req *model.DeletePostRequest) (*model.DeletePostResponse, error) {
	post, err := d.postRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete a post")
	}

	if err := d.postRepo.Delete(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePostResponse{}, nil
}

func (d *postDomain) UploadImage(ctx context.Context, req *model.UploadImageRequest) (*model.UploadImageResponse, error) {
	resp, err := common.UploadImage(ctx, d.fileStorage, "image", "posts")
	if err != nil {
		return nil, err
	}

	return &model.UploadImageResponse{URL: resp.Url}, nil
}

func (d *postDomain) notifyAuthor(
	ctx context.Context, post *entity.Post, fromUserID string, typ entity.NotificationType, text string,
) {
	from, err := d.userRepo.GetByID(ctx, fromUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get acting user: %v", err)
		return
	}

	notification := &entity.Notification{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        post.AuthorID,
		Type:          typ,
		FromUserID:    from.ID,
		FromUserName:  from.Name,
		FromUserImage: from.AvatarURL,
		PostID:        post.ID,
		PostImage:     post.ImageURL,
		Text:          text,
		Read:          false,
	}
	if err := d.notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
		return
	}

	converted := model.ConvertNotification(notification)
	ev := event.New(
		(*event.NotificationCreatedEvent)(&converted),
		event.Metadata{To: post.AuthorID},
	)
	if b, err := json.Marshal(ev); err == nil {
		err := d.publisher.Publish(ctx, model.NotificationTopic, &pubsub.Pack{
			Key: []byte(post.AuthorID),
			Msg: b,
		})
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot publish notification event: %v", err)
		}
	}
}

func (d *postDomain) convertPosts(ctx context.Context, posts []entity.Post, viewerID string) []model.Post {
	result := make([]model.Post, 0, len(posts))
	for i := range posts {
		comments, err := d.commentRepo.CountByPostID(ctx, posts[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot count comments: %v", err)
		}

		result = append(result, model.ConvertPost(&posts[i], viewerID, comments))
	}

	return result
}

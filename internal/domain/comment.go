package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentDomain interface {
	CreateComment(ctx context.Context, req *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetComments(ctx context.Context, req *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	UpdateComment(ctx context.Context, req *model.UpdateCommentRequest) (*model.UpdateCommentResponse, error)
	DeleteComment(ctx context.Context, req *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	postDomain  *postDomain
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	postDomain *postDomain,
) *commentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		postDomain:  postDomain,
	}
}

func (d *commentDomain) CreateComment(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:         entity.Base{ID: uuid.NewString()},
		PostID:       post.ID,
		AuthorID:     user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.AvatarURL,
		Content:      content,
	}
	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	if post.AuthorID != userID {
		d.postDomain.notifyAuthor(ctx, post, userID, entity.CommentNotification, content)
	}

	return &model.CreateCommentResponse{Comment: model.ConvertComment(comment)}, nil
}

func (d *commentDomain) GetComments(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found post id")
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, req.PostID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Comment, 0, len(comments))
	for i := range comments {
		result = append(result, model.ConvertComment(&comments[i]))
	}

	return &model.GetCommentsResponse{Comments: result}, nil
}

func (d *commentDomain) UpdateComment(
	ctx context.Context, req *model.UpdateCommentRequest,
) (*model.UpdateCommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.BadRequest, "Comment cannot be empty")
	}

	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	if comment.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update a comment")
	}

	if err := d.commentRepo.UpdateContent(ctx, comment.ID, content); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update comment: %v", err)
		return nil, errorx.Unknown
	}

	comment.Content = content
	return &model.UpdateCommentResponse{Comment: model.ConvertComment(comment)}, nil
}

func (d *commentDomain) DeleteComment(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if comment.AuthorID != userID {
		post, err := d.postRepo.GetByID(ctx, comment.PostID)
		if err != nil || post.AuthorID != userID {
			return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete a comment")
		}
	}

	if err := d.commentRepo.Delete(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}

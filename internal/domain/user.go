package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/Ltinterdonato1/BlinkShare/internal/common"
	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/storage"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"gorm.io/gorm"
)

const defaultSearchLimit = 5

type UserDomain interface {
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	SearchUsers(ctx context.Context, req *model.SearchUsersRequest) (*model.SearchUsersResponse, error)
	GetSuggestedUsers(ctx context.Context, req *model.GetSuggestedUsersRequest) (*model.GetSuggestedUsersResponse, error)
	UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	UploadAvatar(ctx context.Context, req *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	counter     *FollowCounter
	fileStorage storage.Storage
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	counter *FollowCounter,
	fileStorage storage.Storage,
) *userDomain {
	return &userDomain{
		userRepo:    userRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		counter:     counter,
		fileStorage: fileStorage,
	}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{
		User: model.ConvertUser(
			user,
			d.counter.Followers(ctx, userID),
			d.counter.Following(ctx, userID),
			false,
		),
	}, nil
}

func (d *userDomain) GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	var (
		user *entity.User
		err  error
	)

	switch {
	case req.ID != "":
		user, err = d.userRepo.GetByID(ctx, req.ID)
	case req.Name != "":
		user, err = d.userRepo.GetByName(ctx, req.Name)
	default:
		return nil, errorx.New(errorx.BadRequest, "Not found user id or name")
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	isFollowing := false
	if viewerID := xcontext.RequestUserID(ctx); viewerID != "" && viewerID != user.ID {
		if _, err := d.followRepo.GetFollowing(ctx, viewerID, user.ID); err == nil {
			isFollowing = true
		}
	}

	return &model.GetUserResponse{
		User: model.ConvertUser(
			user,
			d.counter.Followers(ctx, user.ID),
			d.counter.Following(ctx, user.ID),
			isFollowing,
		),
	}, nil
}

func (d *userDomain) SearchUsers(ctx context.Context, req *model.SearchUsersRequest) (*model.SearchUsersResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return &model.SearchUsersResponse{Users: []model.ShortUser{}}, nil
	}

	limit := req.Limit
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}

	users, err := d.userRepo.SearchByNamePrefix(ctx, query, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search users: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.ShortUser, 0, len(users))
	for i := range users {
		result = append(result, model.ConvertShortUser(&users[i]))
	}

	return &model.SearchUsersResponse{Users: result}, nil
}

func (d *userDomain) GetSuggestedUsers(
	ctx context.Context, req *model.GetSuggestedUsersRequest,
) (*model.GetSuggestedUsersResponse, error) {
	viewerID := xcontext.RequestUserID(ctx)

	excluded := []string{viewerID}
	following, err := d.followRepo.GetFollowingList(ctx, viewerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	for _, f := range following {
		excluded = append(excluded, f.TargetID)
	}

	limit := req.Limit
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}

	users, err := d.userRepo.GetSuggested(ctx, excluded, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get suggested users: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.ShortUser, 0, len(users))
	for i := range users {
		result = append(result, model.ConvertShortUser(&users[i]))
	}

	return &model.GetSuggestedUsersResponse{Users: result}, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	name := strings.TrimSpace(req.Name)
	if name != "" && name != user.Name {
		if _, err := d.userRepo.GetByName(ctx, name); err == nil {
			return nil, errorx.New(errorx.AlreadyExists, "This username is already taken")
		}

		user.Name = name
	}

	user.Bio = req.Bio

	err = d.userRepo.UpdateByID(ctx, userID, &entity.User{Name: user.Name, Bio: user.Bio})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	// Posts carry a denormalized author snapshot that must follow the
	// rename.
	err = d.postRepo.UpdateAuthorInfo(ctx, userID, user.Name, user.AvatarURL)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update author snapshot: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProfileResponse{
		User: model.ConvertUser(
			user,
			d.counter.Followers(ctx, userID),
			d.counter.Following(ctx, userID),
			false,
		),
	}, nil
}

func (d *userDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp, err := common.UploadAvatar(ctx, d.fileStorage, "image")
	if err != nil {
		return nil, err
	}

	err = d.userRepo.UpdateByID(ctx, userID, &entity.User{AvatarURL: resp.Url})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update avatar: %v", err)
		return nil, errorx.Unknown
	}

	err = d.postRepo.UpdateAuthorInfo(ctx, userID, user.Name, resp.Url)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update author snapshot: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UploadAvatarResponse{URL: resp.Url}, nil
}

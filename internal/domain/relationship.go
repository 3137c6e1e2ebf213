package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/internal/domain/notification/event"
	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/pubsub"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xredis"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

const followCountTTL = 5 * time.Minute

// FollowCounter serves follower and following counts through redis, falling
// back to the database on a miss. Cached values are invalidated whenever a
// follow edge changes.
type FollowCounter struct {
	followRepo  repository.FollowRepository
	redisClient xredis.Client
}

func NewFollowCounter(
	followRepo repository.FollowRepository,
	redisClient xredis.Client,
) *FollowCounter {
	return &FollowCounter{
		followRepo:  followRepo,
		redisClient: redisClient,
	}
}

func (c *FollowCounter) Followers(ctx context.Context, userID string) int64 {
	return c.count(ctx, fmt.Sprintf("followers_count:%s", userID),
		func() (int64, error) { return c.followRepo.CountFollowers(ctx, userID) })
}

func (c *FollowCounter) Following(ctx context.Context, userID string) int64 {
	return c.count(ctx, fmt.Sprintf("following_count:%s", userID),
		func() (int64, error) { return c.followRepo.CountFollowing(ctx, userID) })
}

func (c *FollowCounter) count(ctx context.Context, key string, load func() (int64, error)) int64 {
	if c.redisClient != nil {
		cached, err := c.redisClient.Get(ctx, key)
		if err == nil {
			if n, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return n
			}
		} else if !errors.Is(err, xredis.Nil) {
			xcontext.Logger(ctx).Warnf("Cannot get cached count: %v", err)
		}
	}

	n, err := load()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count follow edges: %v", err)
		return 0
	}

	if c.redisClient != nil {
		err := c.redisClient.Set(ctx, key, strconv.FormatInt(n, 10), followCountTTL)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache count: %v", err)
		}
	}

	return n
}

// Invalidate drops the cached counts affected by a toggle between userID
// and targetID.
func (c *FollowCounter) Invalidate(ctx context.Context, userID, targetID string) {
	if c.redisClient == nil {
		return
	}

	err := c.redisClient.Del(ctx,
		fmt.Sprintf("following_count:%s", userID),
		fmt.Sprintf("followers_count:%s", targetID),
	)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate cached counts: %v", err)
	}
}

type RelationshipDomain interface {
	GetFollowStatus(ctx context.Context, req *model.GetFollowStatusRequest) (*model.GetFollowStatusResponse, error)
	ToggleFollow(ctx context.Context, req *model.ToggleFollowRequest) (*model.ToggleFollowResponse, error)
	GetFollowers(ctx context.Context, req *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(ctx context.Context, req *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type relationshipDomain struct {
	followRepo       repository.FollowRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	counter          *FollowCounter
	publisher        pubsub.Publisher

	// inflight guards each (viewer, target) pair so a second toggle cannot
	// start before the first one finished its mirror writes.
	inflight *xsync.MapOf[string, struct{}]
}

func NewRelationshipDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	counter *FollowCounter,
	publisher pubsub.Publisher,
) *relationshipDomain {
	return &relationshipDomain{
		followRepo:       followRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		counter:          counter,
		publisher:        publisher,
		inflight:         xsync.NewMapOf[struct{}](),
	}
}

// GetFollowStatus never fails. Any error while reading the edge is reported
// to the client as not-following so the caller can still render a follow
// button.
func (d *relationshipDomain) GetFollowStatus(
	ctx context.Context, req *model.GetFollowStatusRequest,
) (*model.GetFollowStatusResponse, error) {
	viewerID := xcontext.RequestUserID(ctx)
	if viewerID == "" || req.UserID == "" || viewerID == req.UserID {
		return &model.GetFollowStatusResponse{Following: false}, nil
	}

	_, err := d.followRepo.GetFollowing(ctx, viewerID, req.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follow status: %v", err)
		}

		return &model.GetFollowStatusResponse{Following: false}, nil
	}

	return &model.GetFollowStatusResponse{Following: true}, nil
}

// ToggleFollow flips the follow edge from the requesting user to
// req.UserID. The two mirror rows are written one after another without a
// transaction; if the second write fails the first is kept and the error is
// surfaced, leaving the mirrors to disagree until the user retries.
func (d *relationshipDomain) ToggleFollow(
	ctx context.Context, req *model.ToggleFollowRequest,
) (*model.ToggleFollowResponse, error) {
	viewerID := xcontext.RequestUserID(ctx)
	if viewerID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found user id")
	}

	if req.UserID == viewerID {
		return &model.ToggleFollowResponse{Following: false}, nil
	}

	pair := viewerID + "/" + req.UserID
	if _, loaded := d.inflight.LoadOrStore(pair, struct{}{}); loaded {
		// A toggle for this pair is still running. Report the current
		// persisted state instead of starting a second one.
		status, _ := d.GetFollowStatus(ctx, &model.GetFollowStatusRequest{UserID: req.UserID})
		return &model.ToggleFollowResponse{Following: status.Following}, nil
	}
	defer d.inflight.Delete(pair)

	target, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get target user: %v", err)
		return nil, errorx.Unknown
	}

	_, err = d.followRepo.GetFollowing(ctx, viewerID, req.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get current follow edge: %v", err)
		return nil, errorx.Unknown
	}

	following := err == nil
	if following {
		if err := d.unfollow(ctx, viewerID, req.UserID); err != nil {
			return nil, err
		}
	} else {
		if err := d.follow(ctx, viewerID, target); err != nil {
			return nil, err
		}
	}

	d.counter.Invalidate(ctx, viewerID, req.UserID)

	ev := event.New(
		&event.FollowedEvent{UserID: viewerID, TargetID: req.UserID, Following: !following},
		event.Metadata{To: req.UserID},
	)
	if b, err := json.Marshal(ev); err == nil {
		err := d.publisher.Publish(ctx, model.NotificationTopic, &pubsub.Pack{
			Key: []byte(req.UserID),
			Msg: b,
		})
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot publish followed event: %v", err)
		}
	}

	return &model.ToggleFollowResponse{Following: !following}, nil
}

func (d *relationshipDomain) follow(ctx context.Context, viewerID string, target *entity.User) error {
	err := d.followRepo.CreateFollowing(ctx, &entity.Following{
		UserID:   viewerID,
		TargetID: target.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create following edge: %v", err)
		return errorx.Unknown
	}

	err = d.followRepo.CreateFollower(ctx, &entity.Follower{
		UserID:     target.ID,
		FollowerID: viewerID,
	})
	if err != nil {
		// The forward edge is already committed. It stays in place so a
		// retry converges instead of flapping.
		xcontext.Logger(ctx).Errorf("Cannot create follower mirror: %v", err)
		return errorx.Unknown
	}

	viewer, err := d.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get viewer for notification: %v", err)
		return errorx.Unknown
	}

	notification := &entity.Notification{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        target.ID,
		Type:          entity.FollowNotification,
		FromUserID:    viewer.ID,
		FromUserName:  viewer.Name,
		FromUserImage: viewer.AvatarURL,
		Read:          false,
	}
	if err := d.notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow notification: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *relationshipDomain) unfollow(ctx context.Context, viewerID, targetID string) error {
	if err := d.followRepo.DeleteFollowing(ctx, viewerID, targetID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete following edge: %v", err)
		return errorx.Unknown
	}

	if err := d.followRepo.DeleteFollower(ctx, targetID, viewerID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follower mirror: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *relationshipDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found user id")
	}

	followers, err := d.followRepo.GetFollowerList(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower list: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(followers))
	for _, f := range followers {
		ids = append(ids, f.FollowerID)
	}

	users, err := d.shortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{Users: users}, nil
}

func (d *relationshipDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found user id")
	}

	following, err := d.followRepo.GetFollowingList(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following list: %v", err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(following))
	for _, f := range following {
		ids = append(ids, f.TargetID)
	}

	users, err := d.shortUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingResponse{Users: users}, nil
}

func (d *relationshipDomain) shortUsers(ctx context.Context, ids []string) ([]model.ShortUser, error) {
	if len(ids) == 0 {
		return []model.ShortUser{}, nil
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	viewerFollowing := map[string]bool{}
	if viewerID := xcontext.RequestUserID(ctx); viewerID != "" {
		edges, err := d.followRepo.GetFollowingList(ctx, viewerID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get viewer following list: %v", err)
		} else {
			for _, e := range edges {
				viewerFollowing[e.TargetID] = true
			}
		}
	}

	result := make([]model.ShortUser, 0, len(users))
	for i := range users {
		short := model.ConvertShortUser(&users[i])
		short.IsFollowing = viewerFollowing[users[i].ID]
		result = append(result, short)
	}

	return result, nil
}

package domain

import (
	"context"
	"testing"

	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/testutil"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestRelationshipDomain() *relationshipDomain {
	followRepo := repository.NewFollowRepository()
	return NewRelationshipDomain(
		followRepo,
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
		NewFollowCounter(followRepo, &testutil.MockRedisClient{}),
		&testutil.MockPublisher{},
	)
}

func Test_relationshipDomain_ToggleFollow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()
	followRepo := repository.NewFollowRepository()
	notificationRepo := repository.NewNotificationRepository()

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, resp.Following)

	// Both mirror tables must record the edge.
	_, err = followRepo.GetFollowing(ctx, testutil.User1.ID, testutil.User2.ID)
	require.NoError(t, err)
	followers, err := followRepo.GetFollowerList(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, testutil.User1.ID, followers[0].FollowerID)

	// Exactly one follow notification, carrying the follower snapshot.
	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, "follow", string(notifications[0].Type))
	require.Equal(t, testutil.User1.ID, notifications[0].FromUserID)
	require.Equal(t, testutil.User1.Name, notifications[0].FromUserName)
	require.False(t, notifications[0].Read)

	resp, err = domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.False(t, resp.Following)

	// Unfollow removes both mirrors but keeps the notification.
	following, err := followRepo.GetFollowingList(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, following)
	followers, err = followRepo.GetFollowerList(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Empty(t, followers)

	notifications, err = notificationRepo.GetListByUserID(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
}

func Test_relationshipDomain_ToggleFollow_whilePending(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()
	followRepo := repository.NewFollowRepository()

	// While a toggle for the pair is still running, a second call reports
	// the persisted state and writes nothing.
	pair := testutil.User1.ID + "/" + testutil.User2.ID
	domain.inflight.Store(pair, struct{}{})

	resp, err := domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.False(t, resp.Following)

	following, err := followRepo.GetFollowingList(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, following)
	followers, err := followRepo.GetFollowerList(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Empty(t, followers)

	// Once the pending toggle clears, the next call proceeds.
	domain.inflight.Delete(pair)
	resp, err = domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, resp.Following)

	// With an existing edge the blocked call reports it without removing it.
	domain.inflight.Store(pair, struct{}{})
	resp, err = domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, resp.Following)

	following, err = followRepo.GetFollowingList(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
}

func Test_relationshipDomain_ToggleFollow_self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()

	resp, err := domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.False(t, resp.Following)

	following, err := repository.NewFollowRepository().GetFollowingList(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, following)
}

func Test_relationshipDomain_ToggleFollow_unknownTarget(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()

	_, err := domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: "no-such-user"})
	require.Error(t, err)
}

func Test_relationshipDomain_ToggleFollow_mutualEdgesAreIndependent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.ToggleFollow(ctx1, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.ToggleFollow(ctx2, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	// Dropping one direction must not touch the other.
	_, err = domain.ToggleFollow(ctx1, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	status, err := domain.GetFollowStatus(ctx2, &model.GetFollowStatusRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.True(t, status.Following)

	status, err = domain.GetFollowStatus(ctx1, &model.GetFollowStatusRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.False(t, status.Following)
}

func Test_relationshipDomain_GetFollowStatus(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()

	// Unauthenticated viewers and missing subjects resolve to false
	// instead of an error.
	status, err := domain.GetFollowStatus(ctx, &model.GetFollowStatusRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.False(t, status.Following)

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	status, err = domain.GetFollowStatus(ctx, &model.GetFollowStatusRequest{UserID: "no-such-user"})
	require.NoError(t, err)
	require.False(t, status.Following)

	status, err = domain.GetFollowStatus(ctx, &model.GetFollowStatusRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.False(t, status.Following)

	_, err = domain.ToggleFollow(ctx, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	status, err = domain.GetFollowStatus(ctx, &model.GetFollowStatusRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, status.Following)
}

func Test_relationshipDomain_GetFollowersAndFollowing(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.ToggleFollow(ctx1, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.ToggleFollow(ctx3, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	followers, err := domain.GetFollowers(ctx1, &model.GetFollowersRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Len(t, followers.Users, 2)

	following, err := domain.GetFollowing(ctx1, &model.GetFollowingRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, following.Users, 1)
	require.Equal(t, testutil.User2.ID, following.Users[0].ID)
}

func Test_followCounter(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestRelationshipDomain()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.ToggleFollow(ctx1, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	counter := NewFollowCounter(repository.NewFollowRepository(), &testutil.MockRedisClient{})
	require.EqualValues(t, 1, counter.Followers(ctx, testutil.User2.ID))
	require.EqualValues(t, 1, counter.Following(ctx, testutil.User1.ID))
	require.EqualValues(t, 0, counter.Followers(ctx, testutil.User1.ID))
}

func Test_followCounter_cachedValueWins(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	counter := NewFollowCounter(repository.NewFollowRepository(), &testutil.MockRedisClient{
		GetFunc: func(_ context.Context, key string) (string, error) {
			return "42", nil
		},
	})

	require.EqualValues(t, 42, counter.Followers(ctx, testutil.User1.ID))
}

package domain

import (
	"testing"

	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/testutil"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestPostDomain() *postDomain {
	return NewPostDomain(
		repository.NewPostRepository(),
		repository.NewCommentRepository(),
		repository.NewUserRepository(),
		repository.NewFollowRepository(),
		repository.NewNotificationRepository(),
		&testutil.MockPublisher{},
		&testutil.MockStorage{},
	)
}

func Test_postDomain_CreatePost(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestPostDomain()
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := domain.CreatePost(ctx, &model.CreatePostRequest{
		Caption:  "  sunset  ",
		ImageURL: "https://example.com/sunset.jpg",
	})
	require.NoError(t, err)
	require.Equal(t, "sunset", resp.Post.Caption)
	require.Equal(t, testutil.User1.ID, resp.Post.AuthorID)
	require.Equal(t, testutil.User1.Name, resp.Post.AuthorName)
	require.Empty(t, resp.Post.Likes)

	_, err = domain.CreatePost(ctx, &model.CreatePostRequest{Caption: "no image"})
	require.Error(t, err)
}

func Test_postDomain_GetFeed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	postDomain := newTestPostDomain()
	relationshipDomain := newTestRelationshipDomain()

	// A viewer following nobody sees the global feed.
	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	feed, err := postDomain.GetFeed(ctx3, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 2)

	// After following user1, the feed narrows to followed authors plus
	// the viewer's own posts.
	_, err = relationshipDomain.ToggleFollow(ctx3, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	feed, err = postDomain.GetFeed(ctx3, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	require.Equal(t, testutil.User1.ID, feed.Posts[0].AuthorID)
}

func Test_postDomain_ToggleLike(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestPostDomain()
	notificationRepo := repository.NewNotificationRepository()

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := domain.ToggleLike(ctx2, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.True(t, resp.Liked)
	require.EqualValues(t, 1, resp.Likes)

	// The author gets exactly one like notification.
	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, "like", string(notifications[0].Type))
	require.Equal(t, testutil.Post1.ID, notifications[0].PostID)

	resp, err = domain.ToggleLike(ctx2, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.False(t, resp.Liked)
	require.EqualValues(t, 0, resp.Likes)

	// Liking your own post never notifies.
	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.ToggleLike(ctx1, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	notifications, err = notificationRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
}

func Test_postDomain_DeletePost(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestPostDomain()

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := domain.DeletePost(ctx2, &model.DeletePostRequest{ID: testutil.Post1.ID})
	require.Error(t, err)

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.DeletePost(ctx1, &model.DeletePostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)

	_, err = domain.GetPost(ctx1, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.Error(t, err)
}

func Test_postDomain_UpdatePost(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestPostDomain()

	// Only the author can change the caption.
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := domain.UpdatePost(ctx2, &model.UpdatePostRequest{
		ID:      testutil.Post1.ID,
		Caption: "not mine",
	})
	require.Error(t, err)

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.UpdatePost(ctx1, &model.UpdatePostRequest{
		ID:      testutil.Post1.ID,
		Caption: "  new caption  ",
	})
	require.NoError(t, err)
	require.Equal(t, "new caption", resp.Post.Caption)

	got, err := domain.GetPost(ctx1, &model.GetPostRequest{ID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, "new caption", got.Post.Caption)
}

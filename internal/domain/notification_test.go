package domain

import (
	"testing"

	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/testutil"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_notificationDomain_GetAndMarkRead(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	relationshipDomain := newTestRelationshipDomain()
	postDomain := newTestPostDomain()
	domain := NewNotificationDomain(repository.NewNotificationRepository())

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := relationshipDomain.ToggleFollow(ctx2, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	_, err = postDomain.ToggleLike(ctx2, &model.ToggleLikeRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.GetNotifications(ctx1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	require.EqualValues(t, 2, resp.Unread)

	_, err = domain.MarkRead(ctx1, &model.MarkNotificationsReadRequest{})
	require.NoError(t, err)

	resp, err = domain.GetNotifications(ctx1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	require.EqualValues(t, 0, resp.Unread)
	for _, n := range resp.Notifications {
		require.True(t, n.Read)
	}

	// Unfollow must not append another notification.
	_, err = relationshipDomain.ToggleFollow(ctx2, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	resp, err = domain.GetNotifications(ctx1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
}

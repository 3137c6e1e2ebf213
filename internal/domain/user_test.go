package domain

import (
	"fmt"
	"testing"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/testutil"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestUserDomain() *userDomain {
	followRepo := repository.NewFollowRepository()
	return NewUserDomain(
		repository.NewUserRepository(),
		followRepo,
		repository.NewPostRepository(),
		NewFollowCounter(followRepo, &testutil.MockRedisClient{}),
		&testutil.MockStorage{},
	)
}

func Test_userDomain_GetUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := newTestUserDomain()
	relationshipDomain := newTestRelationshipDomain()

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := relationshipDomain.ToggleFollow(ctx2, &model.ToggleFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	resp, err := userDomain.GetUser(ctx2, &model.GetUserRequest{Name: testutil.User1.Name})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)
	require.True(t, resp.User.IsFollowing)
	require.EqualValues(t, 1, resp.User.Followers)
	require.EqualValues(t, 0, resp.User.Following)

	_, err = userDomain.GetUser(ctx2, &model.GetUserRequest{})
	require.Error(t, err)

	_, err = userDomain.GetUser(ctx2, &model.GetUserRequest{ID: "no-such-user"})
	require.Error(t, err)
}

func Test_userDomain_SearchUsers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userRepo := repository.NewUserRepository()
	for i := 0; i < 8; i++ {
		err := userRepo.Create(ctx, &entity.User{
			Base:  entity.Base{ID: uuid.NewString()},
			Name:  fmt.Sprintf("annie%d", i),
			Email: fmt.Sprintf("annie%d@example.com", i),
		})
		require.NoError(t, err)
	}

	domain := newTestUserDomain()
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := domain.SearchUsers(ctx, &model.SearchUsersRequest{Query: "annie"})
	require.NoError(t, err)
	require.Len(t, resp.Users, 5)

	resp, err = domain.SearchUsers(ctx, &model.SearchUsersRequest{Query: "annie3"})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)

	// Prefix match only; no substring search.
	resp, err = domain.SearchUsers(ctx, &model.SearchUsersRequest{Query: "nnie"})
	require.NoError(t, err)
	require.Empty(t, resp.Users)

	resp, err = domain.SearchUsers(ctx, &model.SearchUsersRequest{Query: "  "})
	require.NoError(t, err)
	require.Empty(t, resp.Users)
}

func Test_userDomain_GetSuggestedUsers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := newTestUserDomain()
	relationshipDomain := newTestRelationshipDomain()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := userDomain.GetSuggestedUsers(ctx1, &model.GetSuggestedUsersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 2)

	// Followed users drop out of the suggestions.
	_, err = relationshipDomain.ToggleFollow(ctx1, &model.ToggleFollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	resp, err = userDomain.GetSuggestedUsers(ctx1, &model.GetSuggestedUsersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	require.Equal(t, testutil.User3.ID, resp.Users[0].ID)
}

func Test_userDomain_UpdateProfile(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestUserDomain()
	postRepo := repository.NewPostRepository()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.UpdateProfile(ctx1, &model.UpdateProfileRequest{
		Name: "alice_v2",
		Bio:  "street photography",
	})
	require.NoError(t, err)
	require.Equal(t, "alice_v2", resp.User.Name)
	require.Equal(t, "street photography", resp.User.Bio)

	// The author snapshot on existing posts follows the rename.
	post, err := postRepo.GetByID(ctx, testutil.Post1.ID)
	require.NoError(t, err)
	require.Equal(t, "alice_v2", post.AuthorName)

	_, err = domain.UpdateProfile(ctx1, &model.UpdateProfileRequest{Name: testutil.User2.Name})
	require.Error(t, err)
}

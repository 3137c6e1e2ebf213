package domain

import (
	"testing"

	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/testutil"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestCommentDomain() *commentDomain {
	return NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewPostRepository(),
		repository.NewUserRepository(),
		newTestPostDomain(),
	)
}

func Test_commentDomain_CreateComment(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestCommentDomain()
	notificationRepo := repository.NewNotificationRepository()

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := domain.CreateComment(ctx2, &model.CreateCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: "great shot",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.Comment.AuthorID)
	require.Equal(t, "great shot", resp.Comment.Content)

	notifications, err := notificationRepo.GetListByUserID(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, "comment", string(notifications[0].Type))
	require.Equal(t, "great shot", notifications[0].Text)
	require.Equal(t, testutil.Post1.ImageURL, notifications[0].PostImage)

	_, err = domain.CreateComment(ctx2, &model.CreateCommentRequest{PostID: testutil.Post1.ID, Content: "   "})
	require.Error(t, err)

	_, err = domain.CreateComment(ctx2, &model.CreateCommentRequest{PostID: "no-such-post", Content: "hi"})
	require.Error(t, err)
}

func Test_commentDomain_DeleteComment(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestCommentDomain()

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	created, err := domain.CreateComment(ctx2, &model.CreateCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: "first",
	})
	require.NoError(t, err)

	// A bystander cannot delete the comment.
	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.DeleteComment(ctx3, &model.DeleteCommentRequest{ID: created.Comment.ID})
	require.Error(t, err)

	// The post author can moderate comments on their own post.
	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.DeleteComment(ctx1, &model.DeleteCommentRequest{ID: created.Comment.ID})
	require.NoError(t, err)

	comments, err := domain.GetComments(ctx1, &model.GetCommentsRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Empty(t, comments.Comments)
}

func Test_commentDomain_UpdateComment(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestCommentDomain()

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	created, err := domain.CreateComment(ctx2, &model.CreateCommentRequest{
		PostID:  testutil.Post1.ID,
		Content: "nice",
	})
	require.NoError(t, err)

	// Not even the post author can edit someone else's comment.
	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.UpdateComment(ctx1, &model.UpdateCommentRequest{
		ID:      created.Comment.ID,
		Content: "rewritten",
	})
	require.Error(t, err)

	resp, err := domain.UpdateComment(ctx2, &model.UpdateCommentRequest{
		ID:      created.Comment.ID,
		Content: "  very nice  ",
	})
	require.NoError(t, err)
	require.Equal(t, "very nice", resp.Comment.Content)

	comments, err := domain.GetComments(ctx, &model.GetCommentsRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Len(t, comments.Comments, 1)
	require.Equal(t, "very nice", comments.Comments[0].Content)

	_, err = domain.UpdateComment(ctx2, &model.UpdateCommentRequest{ID: created.Comment.ID, Content: " "})
	require.Error(t, err)
}

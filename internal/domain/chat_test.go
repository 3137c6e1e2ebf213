package domain

import (
	"testing"

	"github.com/Ltinterdonato1/BlinkShare/internal/model"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/pkg/testutil"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestChatDomain() *chatDomain {
	return NewChatDomain(
		repository.NewChatThreadRepository(),
		repository.NewChatMessageRepository(),
		repository.NewUserRepository(),
		&testutil.MockPublisher{},
	)
}

func Test_DeriveThreadID(t *testing.T) {
	require.Equal(t, "a_b", DeriveThreadID("a", "b"))
	require.Equal(t, "a_b", DeriveThreadID("b", "a"))
	require.Equal(t, DeriveThreadID("user1", "user2"), DeriveThreadID("user2", "user1"))
}

func Test_chatDomain_OpenThread(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestChatDomain()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.OpenThread(ctx1, &model.OpenThreadRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, DeriveThreadID(testutil.User1.ID, testutil.User2.ID), resp.Thread.ID)
	require.ElementsMatch(t, []string{testutil.User1.ID, testutil.User2.ID}, resp.Thread.Participants)
	require.Equal(t, testutil.User1.Name, resp.Thread.Users[testutil.User1.ID].Name)

	// Opening from the other side lands on the same thread.
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp2, err := domain.OpenThread(ctx2, &model.OpenThreadRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, resp.Thread.ID, resp2.Thread.ID)

	threads, err := domain.GetThreads(ctx1, &model.GetThreadsRequest{})
	require.NoError(t, err)
	require.Len(t, threads.Threads, 1)
}

func Test_chatDomain_OpenThread_self(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestChatDomain()
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	_, err := domain.OpenThread(ctx, &model.OpenThreadRequest{UserID: testutil.User1.ID})
	require.Error(t, err)
}

func Test_chatDomain_SendMessage(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestChatDomain()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	opened, err := domain.OpenThread(ctx1, &model.OpenThreadRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = domain.SendMessage(ctx1, &model.SendMessageRequest{
		ThreadID: opened.Thread.ID,
		Content:  "hello",
	})
	require.NoError(t, err)

	_, err = domain.SendMessage(ctx1, &model.SendMessageRequest{
		ThreadID: opened.Thread.ID,
		ImageURL: "https://example.com/photo.jpg",
	})
	require.NoError(t, err)

	// An image message is summarized in the thread preview.
	threads, err := domain.GetThreads(ctx1, &model.GetThreadsRequest{})
	require.NoError(t, err)
	require.Len(t, threads.Threads, 1)
	require.Equal(t, "📷 Photo", threads.Threads[0].LastMessage)

	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	messages, err := domain.GetMessages(ctx2, &model.GetMessagesRequest{ThreadID: opened.Thread.ID})
	require.NoError(t, err)
	require.Len(t, messages.Messages, 2)
	require.Equal(t, "hello", messages.Messages[0].Content)

	// Reopening the thread must keep the last message.
	reopened, err := domain.OpenThread(ctx2, &model.OpenThreadRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, "📷 Photo", reopened.Thread.LastMessage)
}

func Test_chatDomain_SendMessage_notAMember(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestChatDomain()

	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	opened, err := domain.OpenThread(ctx1, &model.OpenThreadRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	ctx3 := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = domain.SendMessage(ctx3, &model.SendMessageRequest{
		ThreadID: opened.Thread.ID,
		Content:  "let me in",
	})
	require.Error(t, err)

	_, err = domain.GetMessages(ctx3, &model.GetMessagesRequest{ThreadID: opened.Thread.ID})
	require.Error(t, err)

	_, err = domain.SendMessage(ctx1, &model.SendMessageRequest{ThreadID: opened.Thread.ID})
	require.Error(t, err)
}

func Test_chatDomain_EditAndDeleteMessage(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestChatDomain()
	ctx1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)

	thread, err := domain.OpenThread(ctx1, &model.OpenThreadRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	sent, err := domain.SendMessage(ctx1, &model.SendMessageRequest{
		ThreadID: thread.Thread.ID,
		Content:  "helo",
	})
	require.NoError(t, err)

	// Only the sender can edit.
	_, err = domain.EditMessage(ctx2, &model.EditMessageRequest{
		MessageID: sent.Message.ID,
		Content:   "hijacked",
	})
	require.Error(t, err)

	edited, err := domain.EditMessage(ctx1, &model.EditMessageRequest{
		MessageID: sent.Message.ID,
		Content:   "hello",
	})
	require.NoError(t, err)
	require.Equal(t, "hello", edited.Message.Content)

	messages, err := domain.GetMessages(ctx2, &model.GetMessagesRequest{ThreadID: thread.Thread.ID})
	require.NoError(t, err)
	require.Len(t, messages.Messages, 1)
	require.Equal(t, "hello", messages.Messages[0].Content)

	_, err = domain.DeleteMessage(ctx2, &model.DeleteMessageRequest{MessageID: sent.Message.ID})
	require.Error(t, err)

	_, err = domain.DeleteMessage(ctx1, &model.DeleteMessageRequest{MessageID: sent.Message.ID})
	require.NoError(t, err)

	messages, err = domain.GetMessages(ctx1, &model.GetMessagesRequest{ThreadID: thread.Thread.ID})
	require.NoError(t, err)
	require.Empty(t, messages.Messages)
}

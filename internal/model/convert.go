package model

import (
	"strconv"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
)

func ConvertUser(user *entity.User, followers, following int64, isFollowing bool) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:          user.ID,
		Name:        user.Name,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		Followers:   followers,
		Following:   following,
		IsFollowing: isFollowing,
	}
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}

func ConvertPost(post *entity.Post, viewerID string, comments int64) Post {
	if post == nil {
		return Post{}
	}

	liked := false
	for _, id := range post.Likes {
		if id == viewerID {
			liked = true
			break
		}
	}

	likes := post.Likes
	if likes == nil {
		likes = entity.Array[string]{}
	}

	return Post{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		AuthorName:   post.AuthorName,
		AuthorAvatar: post.AuthorAvatar,
		ImageURL:     post.ImageURL,
		Caption:      post.Caption,
		Likes:        likes,
		Liked:        liked,
		Comments:     comments,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:           comment.ID,
		PostID:       comment.PostID,
		AuthorID:     comment.AuthorID,
		AuthorName:   comment.AuthorName,
		AuthorAvatar: comment.AuthorAvatar,
		Content:      comment.Content,
		CreatedAt:    comment.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertChatThread(thread *entity.ChatThread) ChatThread {
	if thread == nil {
		return ChatThread{}
	}

	users := map[string]ShortUser{}
	for id, obj := range thread.Users {
		snapshot, ok := obj.(map[string]any)
		if !ok {
			continue
		}

		user := ShortUser{ID: id}
		if name, ok := snapshot["name"].(string); ok {
			user.Name = name
		}
		if avatar, ok := snapshot["avatar_url"].(string); ok {
			user.AvatarURL = avatar
		}

		users[id] = user
	}

	return ChatThread{
		ID:           thread.ID,
		Participants: thread.Participants,
		Users:        users,
		LastMessage:  thread.LastMessage,
		UpdatedAt:    thread.UpdatedAt.Format(time.RFC3339),
	}
}

func ConvertChatMessage(message *entity.ChatMessage) ChatMessage {
	if message == nil {
		return ChatMessage{}
	}

	return ChatMessage{
		ID:        strconv.FormatInt(message.ID, 10),
		ThreadID:  message.ThreadID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		ImageURL:  message.ImageURL,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}
}

func ConvertNotification(notification *entity.Notification) Notification {
	if notification == nil {
		return Notification{}
	}

	return Notification{
		ID:            notification.ID,
		Type:          string(notification.Type),
		FromUserID:    notification.FromUserID,
		FromUserName:  notification.FromUserName,
		FromUserImage: notification.FromUserImage,
		PostID:        notification.PostID,
		PostImage:     notification.PostImage,
		Text:          notification.Text,
		Read:          notification.Read,
		CreatedAt:     notification.CreatedAt.Format(time.RFC3339),
	}
}

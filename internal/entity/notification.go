package entity

import "github.com/Ltinterdonato1/BlinkShare/pkg/enum"

type NotificationType string

var (
	FollowNotification  = enum.New(NotificationType("follow"))
	LikeNotification    = enum.New(NotificationType("like"))
	CommentNotification = enum.New(NotificationType("comment"))
)

// Notification is an append-only record addressed to UserID. The From*
// fields are a snapshot of the acting user at the time of the event.
type Notification struct {
	Base

	UserID string `gorm:"index"`
	Type   NotificationType

	FromUserID    string
	FromUserName  string
	FromUserImage string

	// PostID and PostImage are set for like and comment notifications.
	PostID    string
	PostImage string

	// Text is the comment body for comment notifications.
	Text string

	Read bool `gorm:"column:is_read"`
}

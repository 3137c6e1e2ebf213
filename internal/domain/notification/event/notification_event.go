package event

import "github.com/Ltinterdonato1/BlinkShare/internal/model"

// NOTIFICATION CREATED EVENT
type NotificationCreatedEvent model.Notification

func (*NotificationCreatedEvent) Op() string {
	return "notification_created"
}

// MESSAGE CREATED EVENT
type MessageCreatedEvent model.ChatMessage

func (*MessageCreatedEvent) Op() string {
	return "message_created"
}

// FOLLOWED EVENT
type FollowedEvent struct {
	UserID    string `json:"user_id"`
	TargetID  string `json:"target_id"`
	Following bool   `json:"following"`
}

func (*FollowedEvent) Op() string {
	return "followed"
}

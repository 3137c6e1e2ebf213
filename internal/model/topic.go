package model

const (
	NotificationTopic = "NOTIFICATION"
	ChatMessageTopic  = "CHAT_MESSAGE"
)

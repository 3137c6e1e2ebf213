package model

type GetThreadsRequest struct{}

type GetThreadsResponse struct {
	Threads []ChatThread `json:"threads"`
}

type OpenThreadRequest struct {
	UserID string `json:"user_id"`
}

type OpenThreadResponse struct {
	Thread ChatThread `json:"thread"`
}

type SendMessageRequest struct {
	ThreadID string `json:"thread_id"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type SendMessageResponse struct {
	Message ChatMessage `json:"message"`
}

type EditMessageRequest struct {
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

type EditMessageResponse struct {
	Message ChatMessage `json:"message"`
}

type DeleteMessageRequest struct {
	MessageID string `json:"message_id"`
}

type DeleteMessageResponse struct{}

type GetMessagesRequest struct {
	ThreadID      string `json:"thread_id"`
	LastMessageID int64  `json:"last_message_id"`
	Limit         int    `json:"limit"`
}

type GetMessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}

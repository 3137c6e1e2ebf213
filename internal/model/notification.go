package model

type GetNotificationsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Unread        int64          `json:"unread"`
}

type MarkNotificationsReadRequest struct{}

type MarkNotificationsReadResponse struct{}

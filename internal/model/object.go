package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`

	Followers   int64 `json:"followers"`
	Following   int64 `json:"following"`
	IsFollowing bool  `json:"is_following"`
}

type ShortUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	IsFollowing bool   `json:"is_following"`
}

type Post struct {
	ID           string   `json:"id"`
	AuthorID     string   `json:"author_id"`
	AuthorName   string   `json:"author_name"`
	AuthorAvatar string   `json:"author_avatar"`
	ImageURL     string   `json:"image_url"`
	Caption      string   `json:"caption"`
	Likes        []string `json:"likes"`
	Liked        bool     `json:"liked"`
	Comments     int64    `json:"comments"`
	CreatedAt    string   `json:"created_at"`
}

type Comment struct {
	ID           string `json:"id"`
	PostID       string `json:"post_id"`
	AuthorID     string `json:"author_id"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	Content      string `json:"content"`
	CreatedAt    string `json:"created_at"`
}

type ChatThread struct {
	ID           string               `json:"id"`
	Participants []string             `json:"participants"`
	Users        map[string]ShortUser `json:"users"`
	LastMessage  string               `json:"last_message"`
	UpdatedAt    string               `json:"updated_at"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url"`
	CreatedAt string `json:"created_at"`
}

type Notification struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	FromUserID    string `json:"from_user_id"`
	FromUserName  string `json:"from_user_name"`
	FromUserImage string `json:"from_user_image"`
	PostID        string `json:"post_id,omitempty"`
	PostImage     string `json:"post_image,omitempty"`
	Text          string `json:"text,omitempty"`
	Read          bool   `json:"read"`
	CreatedAt     string `json:"created_at"`
}

package entity

import "time"

// ChatThread is a direct-message conversation between two users. Its id
// is derived from the pair of participant ids, so the same pair always
// maps to the same thread.
type ChatThread struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Participants Array[string] `gorm:"type:text"`

	// Users holds a display snapshot (name, avatar) per participant id.
	Users Map `gorm:"type:text"`

	LastMessage string
}

type ChatMessage struct {
	SnowFlakeBase

	ThreadID  string `gorm:"index"`
	SenderID  string
	Content   string
	ImageURL  string
	CreatedAt time.Time
}

package entity

import "time"

// Following records that UserID follows TargetID. It is mirrored by a
// Follower row owned by the target; the two tables are written
// independently and may disagree for a short window after a partial
// failure.
type Following struct {
	UserID   string `gorm:"primaryKey"`
	TargetID string `gorm:"primaryKey"`

	CreatedAt time.Time
}

// Follower is the mirror of Following, keyed by the followed user.
type Follower struct {
	UserID     string `gorm:"primaryKey"`
	FollowerID string `gorm:"primaryKey"`

	CreatedAt time.Time
}

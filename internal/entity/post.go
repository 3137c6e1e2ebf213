package entity

type Post struct {
	Base

	AuthorID     string `gorm:"index"`
	AuthorName   string
	AuthorAvatar string
	ImageURL     string
	Caption      string

	// Likes holds the ids of users who liked the post.
	Likes Array[string] `gorm:"type:text"`
}

type Comment struct {
	Base

	PostID       string `gorm:"index"`
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	Content      string
}

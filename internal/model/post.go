package model

type CreatePostRequest struct {
	Caption  string `json:"caption"`
	ImageURL string `json:"image_url"`
}

type CreatePostResponse struct {
	Post Post `json:"post"`
}

type GetFeedRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetFeedResponse struct {
	Posts []Post `json:"posts"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostResponse struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

type GetUserPostsRequest struct {
	UserID string `json:"user_id"`
}

type GetUserPostsResponse struct {
	Posts []Post `json:"posts"`
}

type ToggleLikeRequest struct {
	PostID string `json:"post_id"`
}

type ToggleLikeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

type UpdatePostRequest struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

type UpdatePostResponse struct {
	Post Post `json:"post"`
}

type DeletePostRequest struct {
	ID string `json:"id"`
}

type DeletePostResponse struct{}

type UploadImageRequest struct{}

type UploadImageResponse struct {
	URL string `json:"url"`
}

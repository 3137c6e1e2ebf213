package model

type GetFollowStatusRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowStatusResponse struct {
	Following bool `json:"following"`
}

type ToggleFollowRequest struct {
	UserID string `json:"user_id"`
}

type ToggleFollowResponse struct {
	Following bool `json:"following"`
}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowersResponse struct {
	Users []ShortUser `json:"users"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowingResponse struct {
	Users []ShortUser `json:"users"`
}

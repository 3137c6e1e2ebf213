package model

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type SearchUsersRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchUsersResponse struct {
	Users []ShortUser `json:"users"`
}

type GetSuggestedUsersRequest struct {
	Limit int `json:"limit"`
}

type GetSuggestedUsersResponse struct {
	Users []ShortUser `json:"users"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type UpdateProfileResponse struct {
	User User `json:"user"`
}

type UploadAvatarRequest struct{}

type UploadAvatarResponse struct {
	URL string `json:"url"`
}

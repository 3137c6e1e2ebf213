package model

import (
	"context"
	"net/http"
	"time"

	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

// AccessToken is the object embedded in the access-token jwt.
type AccessToken struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

type RefreshToken struct {
	Family  string
	Counter uint64
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r *LoginResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return accessTokenCookie(ctx, r.AccessToken)
}

func (r *LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.User.ID}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenResponse) CookieInfo(ctx context.Context) []http.Cookie {
	return accessTokenCookie(ctx, r.AccessToken)
}

func accessTokenCookie(ctx context.Context, accessToken string) []http.Cookie {
	cfg := xcontext.Configs(ctx)
	return []http.Cookie{{
		Name:     cfg.Auth.AccessToken.Name,
		Value:    accessToken,
		Path:     "/",
		Expires:  time.Now().Add(cfg.Auth.AccessToken.Expiration),
		Secure:   true,
		HttpOnly: false,
	}}
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct{}

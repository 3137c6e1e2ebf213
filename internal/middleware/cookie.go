package middleware

import (
	"context"
	"net/http"

	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(ctx context.Context) []http.Cookie
}

// HandleSetAccessToken copies cookies declared by the response onto the
// writer before the body is sent.
func HandleSetAccessToken() func(ctx context.Context) (context.Context, error) {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.GetResponse(ctx).(CookieResponse)
		if ok {
			for _, cookie := range tokenResp.CookieInfo(ctx) {
				cookie := cookie
				http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
			}
		}

		return ctx, nil
	}
}

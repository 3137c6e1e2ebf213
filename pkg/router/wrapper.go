package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ltinterdonato1/BlinkShare/pkg/errorx"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newRequestContext(req, w)

		defer func() {
			writeResponse(ctx)
			for _, closer := range r.closers {
				closer(ctx)
			}
		}()

		if req.Method != method {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Method not allowed"))
			return
		}

		for _, middleware := range r.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		var request Request
		if err := bindRequest(req, &request); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot parse request"))
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			xcontext.SetError(ctx, err)
		} else {
			xcontext.SetResponse(ctx, resp)
		}

		// After-middlewares observe the response before it is written, so
		// they can still modify headers or cookies.
		for _, middleware := range r.afters {
			if _, err := middleware(ctx); err != nil {
				xcontext.Logger(ctx).Errorf("After middleware failed: %v", err)
			}
		}
	}
}

func (r *Router) newRequestContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithResponseHolder(ctx)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.log)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithSnowFlake(ctx, r.snowflake)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx
}

func bindRequest(req *http.Request, out any) error {
	switch req.Method {
	case http.MethodGet, http.MethodDelete:
		return bindQuery(req, out)
	default:
		contentType := req.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "multipart/form-data") {
			// File endpoints read the multipart form themselves through
			// xcontext.HTTPRequest; only plain fields are bound here.
			return bindForm(req, out)
		}

		return bindJson(req, out)
	}
}

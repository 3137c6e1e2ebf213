package router

import (
	"context"
	"net/http"

	"github.com/Ltinterdonato1/BlinkShare/config"
	"github.com/Ltinterdonato1/BlinkShare/pkg/authenticator"
	"github.com/Ltinterdonato1/BlinkShare/pkg/logger"
	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"
)

// HandlerFunc is the shape of every endpoint. The request is already bound
// from the query string or JSON body when the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may return a replacement
// context; returning an error aborts the request with that error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	cfg          config.Configs
	log          logger.Logger
	db           *gorm.DB
	tokenEngine  authenticator.TokenEngine
	sessionStore sessions.Store
	snowflake    *snowflake.Node

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, log logger.Logger) *Router {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	return &Router{
		mux:          http.NewServeMux(),
		cfg:          cfg,
		log:          log,
		db:           db,
		tokenEngine:  authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
		snowflake:    node,
	}
}

// Branch returns a router sharing the same mux and dependencies but with its
// own copy of the middleware chains, so route groups can extend them
// independently.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]MiddlewareFunc{}, r.afters...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

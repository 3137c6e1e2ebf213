package xcontext

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

// The xcontext package carries request-scoped dependencies through a plain
// context.Context, so repositories and domains never hold global state.

type (
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	dbTxKey         struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	requestUserKey  struct{}
	snowflakeKey    struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	holderKey       struct{}
)

// holder is installed once per request by the router so that response and
// error values set deep in the chain are visible to after-middlewares and
// closers without re-wrapping the context.
type holder struct {
	response any
	err      error
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.SILENCE)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If a transaction was begun with
// WithDBTransaction, the transaction takes precedence.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok {
		return tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return nil
	}

	return db
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
	if !ok {
		return nil
	}

	return engine
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	store, ok := ctx.Value(sessionStoreKey{}).(sessions.Store)
	if !ok {
		return nil
	}

	return store
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserKey{}, userID)
}

// RequestUserID returns the authenticated user id of this request. An empty
// string is the explicit unauthenticated variant.
func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(requestUserKey{}).(string)
	if !ok {
		return ""
	}

	return id
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, ok := ctx.Value(snowflakeKey{}).(*snowflake.Node)
	if !ok {
		return nil
	}

	return node
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	if !ok {
		return nil
	}

	return w
}

func WithResponseHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, holderKey{}, &holder{})
}

func SetResponse(ctx context.Context, resp any) {
	if h, ok := ctx.Value(holderKey{}).(*holder); ok {
		h.response = resp
	}
}

func GetResponse(ctx context.Context) any {
	if h, ok := ctx.Value(holderKey{}).(*holder); ok {
		return h.response
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if h, ok := ctx.Value(holderKey{}).(*holder); ok {
		h.err = err
	}
}

func Error(ctx context.Context) error {
	if h, ok := ctx.Value(holderKey{}).(*holder); ok {
		return h.err
	}

	return nil
}

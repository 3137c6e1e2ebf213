package xcontext

import (
	"context"

	"gorm.io/gorm"
)

// WithDBTransaction begins a database transaction and returns a context whose
// DB() resolves to it. The caller is expected to defer
// WithRollbackDBTransaction and call WithCommitDBTransaction on success;
// rolling back an already-committed transaction is a no-op in gorm.
func WithDBTransaction(ctx context.Context) context.Context {
	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		return ctx
	}

	return context.WithValue(ctx, dbTxKey{}, db.Begin())
}

func WithCommitDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok {
		tx.Commit()
	}
}

func WithRollbackDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok {
		tx.Rollback()
	}
}

package migration

import (
	"context"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
)

func Migrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Following{},
		&entity.Follower{},
		&entity.Post{},
		&entity.Comment{},
		&entity.ChatThread{},
		&entity.ChatMessage{},
		&entity.Notification{},
		&entity.RefreshToken{},
	)
}

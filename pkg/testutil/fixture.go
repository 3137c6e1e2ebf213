package testutil

import (
	"context"

	"github.com/Ltinterdonato1/BlinkShare/internal/entity"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
)

// The fixtures below are inserted by InsertUsers and InsertPosts so tests
// can reference stable ids.
var (
	User1 = entity.User{
		Base:  entity.Base{ID: "user1"},
		Name:  "alice",
		Email: "alice@example.com",
	}

	User2 = entity.User{
		Base:  entity.Base{ID: "user2"},
		Name:  "bob",
		Email: "bob@example.com",
	}

	User3 = entity.User{
		Base:  entity.Base{ID: "user3"},
		Name:  "carol",
		Email: "carol@example.com",
	}

	Post1 = entity.Post{
		Base:       entity.Base{ID: "post1"},
		AuthorID:   User1.ID,
		AuthorName: User1.Name,
		ImageURL:   "https://example.com/post1.jpg",
		Caption:    "first light",
		Likes:      entity.Array[string]{},
	}

	Post2 = entity.Post{
		Base:       entity.Base{ID: "post2"},
		AuthorID:   User2.ID,
		AuthorName: User2.Name,
		ImageURL:   "https://example.com/post2.jpg",
		Caption:    "golden hour",
		Likes:      entity.Array[string]{},
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertPosts(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2, User3} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()

	for _, post := range []entity.Post{Post1, Post2} {
		post := post
		if err := postRepo.Create(ctx, &post); err != nil {
			panic(err)
		}
	}
}

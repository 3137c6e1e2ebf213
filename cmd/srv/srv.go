package main

import (
	"context"
	"net/http"

	"github.com/Ltinterdonato1/BlinkShare/config"
	"github.com/Ltinterdonato1/BlinkShare/internal/domain"
	"github.com/Ltinterdonato1/BlinkShare/internal/repository"
	"github.com/Ltinterdonato1/BlinkShare/migration"
	"github.com/Ltinterdonato1/BlinkShare/pkg/kafka"
	"github.com/Ltinterdonato1/BlinkShare/pkg/logger"
	"github.com/Ltinterdonato1/BlinkShare/pkg/pubsub"
	"github.com/Ltinterdonato1/BlinkShare/pkg/router"
	"github.com/Ltinterdonato1/BlinkShare/pkg/storage"
	"github.com/Ltinterdonato1/BlinkShare/pkg/ws"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	threadRepo       repository.ChatThreadRepository
	messageRepo      repository.ChatMessageRepository
	notificationRepo repository.NotificationRepository
	refreshTokenRepo repository.RefreshTokenRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	relationshipDomain domain.RelationshipDomain
	postDomain         domain.PostDomain
	commentDomain      domain.CommentDomain
	chatDomain         domain.ChatDomain
	notificationDomain domain.NotificationDomain
	wsProxyDomain      domain.WsProxyDomain

	router *router.Router

	db          *gorm.DB
	redisClient xredis.Client
	publisher   pubsub.Publisher
	subscriber  pubsub.Subscriber
	hub         *ws.Hub
	storage     storage.Storage
	logger      logger.Logger

	configs *config.Configs

	server *http.Server
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(getEnv("LOG_LEVEL", "INFO")))
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                      s.configs.Database.ConnectionString(),
		DefaultStringSize:        256,
		DisableDatetimePrecision: true,
		DontSupportRenameIndex:   true,
		DontSupportRenameColumn:  true,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	ctx := xcontext.WithDB(context.Background(), s.db)
	if err := migration.Migrate(ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(context.Background(), s.configs.Redis)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher(getEnv("KAFKA_CLIENT_ID", "blinkshare"), []string{s.configs.Kafka.Addr})
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.followRepo = repository.NewFollowRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.threadRepo = repository.NewChatThreadRepository()
	s.messageRepo = repository.NewChatMessageRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
}

func (s *srv) loadDomains() {
	counter := domain.NewFollowCounter(s.followRepo, s.redisClient)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.followRepo, s.postRepo, counter, s.storage)
	s.relationshipDomain = domain.NewRelationshipDomain(
		s.followRepo, s.userRepo, s.notificationRepo, counter, s.publisher)
	postDomain := domain.NewPostDomain(
		s.postRepo, s.commentRepo, s.userRepo, s.followRepo, s.notificationRepo, s.publisher, s.storage)
	s.postDomain = postDomain
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postRepo, s.userRepo, postDomain)
	s.chatDomain = domain.NewChatDomain(s.threadRepo, s.messageRepo, s.userRepo, s.publisher)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo)
}

package main

import (
	"log"
	"net/http"

	"github.com/Ltinterdonato1/BlinkShare/internal/middleware"
	"github.com/Ltinterdonato1/BlinkShare/pkg/router"
	"github.com/rs/cors"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadStorage()
	s.loadRedis()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: c.Handler(s.router.Handler()),
	}

	log.Printf("Starting api server on %s\n", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.Before(middleware.VerifyUser())

	// Auth API
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSetAccessToken())
	authRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/register", s.authDomain.Register)
		router.POST(authRouter, "/login", s.authDomain.Login)
		router.POST(authRouter, "/refresh", s.authDomain.Refresh)
		router.POST(authRouter, "/logout", s.authDomain.Logout)
	}

	// These following APIs require an authenticated user.
	authedRouter := s.router.Branch()
	authedRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authedRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authedRouter, "/updateProfile", s.userDomain.UpdateProfile)
		router.POST(authedRouter, "/uploadAvatar", s.userDomain.UploadAvatar)
		router.GET(authedRouter, "/getSuggestedUsers", s.userDomain.GetSuggestedUsers)

		// Relationship API
		router.POST(authedRouter, "/toggleFollow", s.relationshipDomain.ToggleFollow)

		// Post API
		router.POST(authedRouter, "/createPost", s.postDomain.CreatePost)
		router.POST(authedRouter, "/updatePost", s.postDomain.UpdatePost)
		router.POST(authedRouter, "/deletePost", s.postDomain.DeletePost)
		router.POST(authedRouter, "/toggleLike", s.postDomain.ToggleLike)
		router.POST(authedRouter, "/uploadImage", s.postDomain.UploadImage)
		router.GET(authedRouter, "/getFeed", s.postDomain.GetFeed)

		// Comment API
		router.POST(authedRouter, "/createComment", s.commentDomain.CreateComment)
		router.POST(authedRouter, "/updateComment", s.commentDomain.UpdateComment)
		router.POST(authedRouter, "/deleteComment", s.commentDomain.DeleteComment)

		// Chat API
		router.GET(authedRouter, "/getThreads", s.chatDomain.GetThreads)
		router.POST(authedRouter, "/openThread", s.chatDomain.OpenThread)
		router.POST(authedRouter, "/sendMessage", s.chatDomain.SendMessage)
		router.POST(authedRouter, "/editMessage", s.chatDomain.EditMessage)
		router.POST(authedRouter, "/deleteMessage", s.chatDomain.DeleteMessage)
		router.GET(authedRouter, "/getMessages", s.chatDomain.GetMessages)

		// Notification API
		router.GET(authedRouter, "/getNotifications", s.notificationDomain.GetNotifications)
		router.POST(authedRouter, "/markNotificationsRead", s.notificationDomain.MarkRead)
	}

	// Public API.
	router.GET(s.router, "/getFollowStatus", s.relationshipDomain.GetFollowStatus)
	router.GET(s.router, "/getFollowers", s.relationshipDomain.GetFollowers)
	router.GET(s.router, "/getFollowing", s.relationshipDomain.GetFollowing)
	router.GET(s.router, "/getUser", s.userDomain.GetUser)
	router.GET(s.router, "/searchUsers", s.userDomain.SearchUsers)
	router.GET(s.router, "/getPost", s.postDomain.GetPost)
	router.GET(s.router, "/getUserPosts", s.postDomain.GetUserPosts)
	router.GET(s.router, "/getComments", s.commentDomain.GetComments)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/friends_api/internal/middleware"
	"github.com/mroshb/friends_api/pkg/errors"
)

// NewRouter wires every route. limiter may be nil to disable rate limiting.
func NewRouter(h *HandlerManager, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(h.Config.CORSAllowedOrigins))
	if limiter != nil {
		r.Use(limiter.IPMiddleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(h.Config.JWTSecret))
	if limiter != nil {
		authed.Use(limiter.UserMiddleware())
	}
	{
		authed.GET("/auth-user", h.GetAuthUser)

		authed.POST("/friend-request", h.SendFriendRequest)
		authed.POST("/friend-request-response", h.RespondToFriendRequest)
		authed.DELETE("/friend-request-response/delete", h.IgnoreFriendRequest)
		authed.GET("/friends", h.GetFriends)
		authed.GET("/friend-requests", h.GetFriendRequests)

		authed.GET("/users/:id", h.GetUser)
		authed.GET("/users/:id/posts", h.GetUserPosts)

		authed.GET("/posts", h.GetPosts)
		authed.POST("/posts", h.CreatePost)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, errors.New(errors.ErrCodeNotFound, "The requested resource does not exist."))
	})

	return r
}

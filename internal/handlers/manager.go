package handlers

import (
	"github.com/mroshb/friends_api/internal/config"
	"github.com/mroshb/friends_api/internal/resources"
	"github.com/mroshb/friends_api/internal/services"
)

// HandlerManager holds the services and renderer shared by every route.
type HandlerManager struct {
	Config   *config.Config
	Friends  *services.FriendService
	Users    *services.UserService
	Posts    *services.PostService
	Renderer *resources.Renderer
}

func NewHandlerManager(
	cfg *config.Config,
	friends *services.FriendService,
	users *services.UserService,
	posts *services.PostService,
	renderer *resources.Renderer,
) *HandlerManager {
	return &HandlerManager{
		Config:   cfg,
		Friends:  friends,
		Users:    users,
		Posts:    posts,
		Renderer: renderer,
	}
}

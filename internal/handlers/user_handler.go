package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/friends_api/internal/middleware"
	"github.com/mroshb/friends_api/internal/resources"
	"github.com/mroshb/friends_api/pkg/errors"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string          `json:"token"`
	Data  interface{}     `json:"data"`
	Links resources.Links `json:"links"`
}

// GetUser handles GET /users/:id, including the viewer's friendship with them.
func (h *HandlerManager) GetUser(c *gin.Context) {
	userID, err := pathID(c, "id", errors.ErrUserNotFound())
	if err != nil {
		respondError(c, err)
		return
	}

	viewerID := middleware.GetUserID(c)
	profile, err := h.Users.GetProfile(c.Request.Context(), viewerID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.User(profile.User, profile.Friendship, viewerID))
}

func (h *HandlerManager) GetAuthUser(c *gin.Context) {
	viewerID := middleware.GetUserID(c)
	user, err := h.Users.GetAuthUser(c.Request.Context(), viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.User(user, nil, viewerID))
}

func (h *HandlerManager) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, token, err := h.Users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	doc := h.Renderer.User(user, nil, user.ID)
	c.JSON(http.StatusOK, AuthResponse{Token: token, Data: doc.Data, Links: doc.Links})
}

func (h *HandlerManager) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	user, token, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	doc := h.Renderer.User(user, nil, user.ID)
	c.JSON(http.StatusOK, AuthResponse{Token: token, Data: doc.Data, Links: doc.Links})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/friends_api/internal/middleware"
	"github.com/mroshb/friends_api/pkg/errors"
)

type CreatePostRequest struct {
	Body  string `json:"body" binding:"required"`
	Image string `json:"image" binding:"omitempty,max=500"`
}

// GetPosts handles GET /posts: the caller's own posts, newest first.
func (h *HandlerManager) GetPosts(c *gin.Context) {
	posts, err := h.Posts.ListPosts(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.PostCollection(posts, h.Renderer.URL("/posts")))
}

func (h *HandlerManager) GetUserPosts(c *gin.Context) {
	ownerID, err := pathID(c, "id", errors.ErrUserNotFound())
	if err != nil {
		respondError(c, err)
		return
	}

	posts, err := h.Posts.ListUserPosts(c.Request.Context(), middleware.GetUserID(c), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.PostCollection(posts, h.Renderer.URL("/users/%d/posts", ownerID)))
}

func (h *HandlerManager) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	post, err := h.Posts.CreatePost(c.Request.Context(), middleware.GetUserID(c), req.Body, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.Renderer.Post(post))
}

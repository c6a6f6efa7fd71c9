package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/friends_api/internal/middleware"
)

type FriendRequestRequest struct {
	FriendID ID `json:"friend_id" binding:"required"`
}

type FriendResponseRequest struct {
	UserID ID `json:"user_id" binding:"required"`
	Status ID `json:"status" binding:"required"`
}

type IgnoreRequestRequest struct {
	UserID ID `json:"user_id" binding:"required"`
}

// SendFriendRequest handles POST /friend-request.
func (h *HandlerManager) SendFriendRequest(c *gin.Context) {
	var req FriendRequestRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	edge, err := h.Friends.SendRequest(c.Request.Context(), middleware.GetUserID(c), uint(req.FriendID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.Friend(edge))
}

// RespondToFriendRequest handles POST /friend-request-response.
func (h *HandlerManager) RespondToFriendRequest(c *gin.Context) {
	var req FriendResponseRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	edge, err := h.Friends.RespondToRequest(c.Request.Context(), middleware.GetUserID(c), uint(req.UserID), int(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.Friend(edge))
}

// IgnoreFriendRequest handles DELETE /friend-request-response/delete.
func (h *HandlerManager) IgnoreFriendRequest(c *gin.Context) {
	var req IgnoreRequestRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.Friends.IgnoreRequest(c.Request.Context(), middleware.GetUserID(c), uint(req.UserID)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *HandlerManager) GetFriends(c *gin.Context) {
	friends, err := h.Friends.ListFriends(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.FriendsCollection(friends, h.Renderer.URL("/friends")))
}

func (h *HandlerManager) GetFriendRequests(c *gin.Context) {
	requests, err := h.Friends.ListPendingRequests(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.Renderer.FriendCollection(requests, h.Renderer.URL("/friend-requests")))
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/middleware"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/service"
	"github.com/vybhavgg-ship-it/InstaCordChat/pkg/response"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

func (h *FriendHandler) RegisterRoutes(r *gin.RouterGroup) {
	friends := r.Group("/friends")
	{
		friends.GET("", h.List)
		friends.GET("/online", h.Online)
		friends.POST("/requests", h.SendRequest)
		friends.PUT("/requests/:userId/accept", h.Accept)
		friends.DELETE("/:userId", h.Remove)
	}
}

func (h *FriendHandler) List(c *gin.Context) {
	friends, err := h.friendService.List(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list friends")
		return
	}
	response.Success(c, http.StatusOK, friends)
}

func (h *FriendHandler) Online(c *gin.Context) {
	online, err := h.friendService.OnlineFriends(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to query presence")
		return
	}
	response.Success(c, http.StatusOK, online)
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	var req models.FriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.friendService.SendRequest(middleware.UserID(c), req.FriendID); err != nil {
		if errors.Is(err, service.ErrFriendRequestExists) {
			response.Error(c, http.StatusConflict, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to send friend request")
		return
	}
	c.Status(http.StatusCreated)
}

func (h *FriendHandler) Accept(c *gin.Context) {
	requesterID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.friendService.Accept(middleware.UserID(c), uint(requesterID)); err != nil {
		response.Error(c, http.StatusNotFound, "no pending request")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FriendHandler) Remove(c *gin.Context) {
	friendID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.friendService.Remove(middleware.UserID(c), uint(friendID)); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to remove friend")
		return
	}
	c.Status(http.StatusNoContent)
}

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

type ChannelHandler struct {
	channelService *service.ChannelService
}

func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

func (h *ChannelHandler) RegisterRoutes(r *gin.RouterGroup) {
	channels := r.Group("/channels")
	{
		channels.POST("", h.Create)
		channels.GET("", h.List)
		channels.GET("/:id", h.GetDetail)
		channels.GET("/:id/messages", h.History)
		channels.POST("/:id/members", h.AddMember)
		channels.DELETE("/:id/members/:userId", h.RemoveMember)
	}
}

func channelIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid channel id")
		return 0, false
	}
	return uint(id), true
}

func (h *ChannelHandler) Create(c *gin.Context) {
	var req models.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	channel, err := h.channelService.Create(middleware.UserID(c), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create channel")
		return
	}
	response.Success(c, http.StatusCreated, models.NewChannelDetailResponse(channel))
}

func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.channelService.ListByUser(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list channels")
		return
	}
	response.Success(c, http.StatusOK, channels)
}

func (h *ChannelHandler) GetDetail(c *gin.Context) {
	channelID, ok := channelIDParam(c)
	if !ok {
		return
	}

	isMember, err := h.channelService.IsMember(channelID, middleware.UserID(c))
	if err != nil || !isMember {
		response.Error(c, http.StatusForbidden, "not a channel member")
		return
	}

	detail, err := h.channelService.GetDetail(channelID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "channel not found")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *ChannelHandler) History(c *gin.Context) {
	channelID, ok := channelIDParam(c)
	if !ok {
		return
	}

	isMember, err := h.channelService.IsMember(channelID, middleware.UserID(c))
	if err != nil || !isMember {
		response.Error(c, http.StatusForbidden, "not a channel member")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.channelService.History(channelID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load history")
		return
	}
	response.Success(c, http.StatusOK, messages)
}

func (h *ChannelHandler) AddMember(c *gin.Context) {
	channelID, ok := channelIDParam(c)
	if !ok {
		return
	}

	var req struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.channelService.AddMember(channelID, middleware.UserID(c), req.UserID); err != nil {
		if errors.Is(err, service.ErrNotChannelOwner) {
			response.Error(c, http.StatusForbidden, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to add member")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChannelHandler) RemoveMember(c *gin.Context) {
	channelID, ok := channelIDParam(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.channelService.RemoveMember(channelID, middleware.UserID(c), uint(userID)); err != nil {
		if errors.Is(err, service.ErrNotChannelOwner) {
			response.Error(c, http.StatusForbidden, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/middleware"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/service"
	"github.com/vybhavgg-ship-it/InstaCordChat/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("/me", h.GetProfile)
		users.PUT("/me", h.UpdateProfile)
		users.GET("/search", h.Search)
		users.GET("/:id/status", h.GetStatus)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusNotFound, "user not found")
		return
	}
	response.Success(c, http.StatusOK, models.NewUserResponse(user))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(middleware.UserID(c), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	response.Success(c, http.StatusOK, models.NewUserResponse(user))
}

// GetStatus reports another user's presence from the shared store,
// covering users connected to any server instance
func (h *UserHandler) GetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	status, err := h.userService.GetStatus(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, http.StatusNotFound, "user not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"userId": uint(id), "status": status})
}

func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required")
		return
	}

	users, err := h.userService.Search(query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "search failed")
		return
	}
	response.Success(c, http.StatusOK, users)
}

package transport

import (
	"net/http"
	"strconv"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/internal/service"
	"github.com/actionhub-org/HappyFox-practice/pkg/queue"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes role administration and queue introspection
type AdminHandler struct {
	userService service.UserService
	queue       *queue.RedisQueue
}

func NewAdminHandler(userService service.UserService, q *queue.RedisQueue) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		queue:       q,
	}
}

type setRoleRequest struct {
	Email    string `json:"email" binding:"required,email"`
	UserType string `json:"userType" binding:"required"`
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetUserType(c.Request.Context(), req.Email, entity.UserType(req.UserType)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) QueueStats(c *gin.Context) {
	if h.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue is not configured"})
		return
	}

	stats, err := h.queue.GetQueueStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) FailedTasks(c *gin.Context) {
	if h.queue == nil || h.queue.DLQ() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	tasks, err := h.queue.DLQ().GetFailedTasks(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *AdminHandler) RequeueFailedTask(c *gin.Context) {
	if h.queue == nil || h.queue.DLQ() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue is not configured"})
		return
	}

	if err := h.queue.DLQ().RequeueFailedTask(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteFailedTask(c *gin.Context) {
	if h.queue == nil || h.queue.DLQ() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue is not configured"})
		return
	}

	if err := h.queue.DLQ().DeleteFailedTask(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

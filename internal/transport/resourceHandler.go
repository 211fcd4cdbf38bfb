package transport

import (
	"net/http"

	"github.com/actionhub-org/HappyFox-practice/internal/service"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	resourceService service.ResourceService
}

func NewResourceHandler(resourceService service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) Confirm(c *gin.Context) {
	var req service.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	allocation, mailStatus, err := h.resourceService.ConfirmAllocation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"resource":   allocation,
		"mailStatus": mailStatus,
	})
}

func (h *ResourceHandler) AllocationsForOrganizer(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, gin.H{"resources": []interface{}{}})
		return
	}

	allocations, err := h.resourceService.AllocationsForOrganizer(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": allocations})
}

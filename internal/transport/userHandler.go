package transport

import (
	"net/http"
	"strings"

	"github.com/actionhub-org/HappyFox-practice/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// LinkUser upserts the local user record for the caller's bearer token
func (h *UserHandler) LinkUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	user, err := h.userService.LinkUser(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) IsApprover(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, gin.H{"isApprover": false})
		return
	}

	ok, err := h.userService.IsApprover(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isApprover": ok})
}

package transport

import (
	"net/http"

	"github.com/actionhub-org/HappyFox-practice/internal/service"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venueService service.VenueService
}

func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.venueService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) Simulate(c *gin.Context) {
	venues, err := h.venueService.Simulate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venues)
}

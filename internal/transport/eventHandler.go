package transport

import (
	"net/http"

	"github.com/actionhub-org/HappyFox-practice/internal/registry"
	"github.com/actionhub-org/HappyFox-practice/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService    service.EventService
	approvalService service.ApprovalService
	reportService   service.ReportService
	approvers       *registry.Registry
}

func NewEventHandler(
	eventService service.EventService,
	approvalService service.ApprovalService,
	reportService service.ReportService,
	approvers *registry.Registry,
) *EventHandler {
	return &EventHandler{
		eventService:    eventService,
		approvalService: approvalService,
		reportService:   reportService,
		approvers:       approvers,
	}
}

func (h *EventHandler) SubmitEvent(c *gin.Context) {
	var req service.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.SubmitEvent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": event})
}

func (h *EventHandler) EventsForApprover(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, gin.H{"events": []interface{}{}})
		return
	}

	events, err := h.eventService.EventsForApprover(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) EventsForOrganizer(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, gin.H{"events": []interface{}{}})
		return
	}

	events, err := h.eventService.EventsForOrganizer(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) PurgeByApprover(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email"})
		return
	}

	deleted, err := h.eventService.PurgeByApprover(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": deleted})
}

func (h *EventHandler) ApprovedEvents(c *gin.Context) {
	events, err := h.eventService.ApprovedEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

type approveRequest struct {
	EventID       string `json:"eventId" binding:"required"`
	ApproverEmail string `json:"approverEmail" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

func (h *EventHandler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
		return
	}

	event, err := h.approvalService.RecordDecision(c.Request.Context(), req.EventID, req.ApproverEmail, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": event})
}

func (h *EventHandler) Report(c *gin.Context) {
	report, err := h.reportService.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *EventHandler) FinalReports(c *gin.Context) {
	reports, err := h.reportService.FinalReports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *EventHandler) SeedApprovers(c *gin.Context) {
	if err := h.approvers.Reseed(c.Request.Context(), registry.DefaultSeed()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Approvers seeded successfully"})
}

func (h *EventHandler) ListApprovers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"approvers": h.approvers.All()})
}

func (h *EventHandler) SuggestSlots(c *gin.Context) {
	var req service.SuggestSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slotList, err := h.eventService.SuggestSlots(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slotList})
}

type quickApplyRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *EventHandler) QuickApply(c *gin.Context) {
	var req quickApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
		return
	}

	suggestion, err := h.eventService.QuickApply(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

func (h *EventHandler) ApplyVolunteer(c *gin.Context) {
	var req service.VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing eventId or email"})
		return
	}

	if err := h.eventService.ApplyVolunteer(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Applied as volunteer. Confirmation sent to email.",
	})
}

func (h *EventHandler) ApplyParticipant(c *gin.Context) {
	var req service.ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing eventId or email"})
		return
	}

	pass, err := h.eventService.ApplyParticipant(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Applied as participant. Pass sent to email.",
		"pass":    pass,
	})
}

package transport

import (
	"errors"
	"net/http"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

// InitRoutes wires the HTTP surface. The event and resource groups sit
// behind bearer-token auth, which disables itself when no introspector is
// configured. User linking, venues and health stay open.
func InitRoutes(
	eventHandler *EventHandler,
	resourceHandler *ResourceHandler,
	userHandler *UserHandler,
	venueHandler *VenueHandler,
	adminHandler *AdminHandler,
	introspector middleware.TokenIntrospector,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	api := router.Group("/api")
	{
		events := api.Group("/event", middleware.RequireAuth(introspector))
		{
			events.POST("/book", eventHandler.SubmitEvent)
			events.GET("/for-approver", eventHandler.EventsForApprover)
			events.DELETE("/for-approver", eventHandler.PurgeByApprover)
			events.GET("/for-organizer", eventHandler.EventsForOrganizer)
			events.GET("/approved", eventHandler.ApprovedEvents)
			events.PATCH("/approve", eventHandler.Approve)

			events.GET("/report/:id", eventHandler.Report)
			events.GET("/final-reports", eventHandler.FinalReports)

			events.POST("/seed-approvers", eventHandler.SeedApprovers)
			events.GET("/approvers", eventHandler.ListApprovers)
			events.GET("/is-approver", userHandler.IsApprover)

			events.POST("/suggest-slots", eventHandler.SuggestSlots)
			events.POST("/quick-apply", eventHandler.QuickApply)
			events.POST("/apply-volunteer", eventHandler.ApplyVolunteer)
			events.POST("/apply-participant", eventHandler.ApplyParticipant)
		}

		resources := api.Group("/resource", middleware.RequireAuth(introspector))
		{
			resources.PATCH("/confirm", resourceHandler.Confirm)
			resources.GET("/for-organizer", resourceHandler.AllocationsForOrganizer)
		}

		api.POST("/user", userHandler.LinkUser)

		venues := api.Group("/venues")
		{
			venues.GET("", venueHandler.List)
			venues.POST("/simulate", venueHandler.Simulate)
		}

		if adminHandler != nil {
			admin := api.Group("/admin", middleware.RequireAuth(introspector))
			{
				admin.PATCH("/users/role", adminHandler.SetUserRole)
				admin.GET("/queue/stats", adminHandler.QueueStats)
				admin.GET("/dlq", adminHandler.FailedTasks)
				admin.POST("/dlq/:id/requeue", adminHandler.RequeueFailedTask)
				admin.DELETE("/dlq/:id", adminHandler.DeleteFailedTask)
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, entity.ErrInvalidEventID),
		errors.Is(err, entity.ErrInvalidDecision),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidRole):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrApproverNotFound),
		errors.Is(err, entity.ErrAllocationNotFound),
		errors.Is(err, entity.ErrVenueNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrTokenRejected),
		errors.Is(err, entity.ErrMissingBearer):
		status = http.StatusUnauthorized
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

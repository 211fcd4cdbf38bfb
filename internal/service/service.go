package service

import (
	"context"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
)

type EventService interface {
	// Submission and listing
	SubmitEvent(ctx context.Context, req *SubmitEventRequest) (*entity.Event, error)
	EventsForOrganizer(ctx context.Context, email string) ([]*entity.Event, error)
	EventsForApprover(ctx context.Context, email string) ([]*entity.PrioritizedEvent, error)
	ApprovedEvents(ctx context.Context) ([]*entity.Event, error)
	PurgeByApprover(ctx context.Context, email string) (int64, error)

	// Scheduling helpers
	SuggestSlots(ctx context.Context, req *SuggestSlotsRequest) ([]string, error)
	QuickApply(ctx context.Context, description string) (map[string]interface{}, error)

	// Participation applications
	ApplyVolunteer(ctx context.Context, req *VolunteerRequest) error
	ApplyParticipant(ctx context.Context, req *ParticipantRequest) (string, error)
}

// ApprovalService records approver decisions on a submitted event
type ApprovalService interface {
	RecordDecision(ctx context.Context, eventID, approverEmail, decision string) (*entity.Event, error)
}

type ResourceService interface {
	Recommend(ctx context.Context, eventID string) (*entity.ResourceAllocation, error)
	ConfirmAllocation(ctx context.Context, req *ConfirmRequest) (*entity.ResourceAllocation, []NotificationStatus, error)
	AllocationsForOrganizer(ctx context.Context, email string) ([]*entity.ResourceAllocation, error)
}

type ReportService interface {
	Report(ctx context.Context, eventID string) (*EventReport, error)
	FinalReports(ctx context.Context) ([]*EventReport, error)
}

type UserService interface {
	LinkUser(ctx context.Context, token string) (*entity.User, error)
	IsApprover(ctx context.Context, email string) (bool, error)
	SetUserType(ctx context.Context, email string, userType entity.UserType) error
}

type VenueService interface {
	List(ctx context.Context) ([]*entity.Venue, error)
	Simulate(ctx context.Context) ([]*entity.Venue, error)
}

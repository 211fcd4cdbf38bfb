package repository

import (
	"context"
	"time"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Event, error)
	DeleteByApprover(ctx context.Context, email string) (int64, error)

	// Query operations
	GetByOrganizer(ctx context.Context, email string) ([]*entity.Event, error)
	GetByApprover(ctx context.Context, email string) ([]*entity.Event, error)
	GetFullyApproved(ctx context.Context) ([]*entity.Event, error)
	GetHistory(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error)

	// Approval chain mutation: single filtered array update, the only
	// writer of approver status anywhere in the service.
	UpdateApproverStatus(ctx context.Context, eventID primitive.ObjectID, approverEmail string, status entity.ApprovalStatus, actedAt time.Time) (*entity.Event, error)
}

type ResourceRepository interface {
	UpsertRecommendation(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error)
	Confirm(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error)

	GetByEventID(ctx context.Context, eventID primitive.ObjectID) (*entity.ResourceAllocation, error)
	GetByEventIDs(ctx context.Context, eventIDs []primitive.ObjectID) ([]*entity.ResourceAllocation, error)
	GetConfirmed(ctx context.Context) ([]*entity.ResourceAllocation, error)
}

type ApproverRepository interface {
	GetAll(ctx context.Context) ([]*entity.Approver, error)
	ReplaceAll(ctx context.Context, approvers []*entity.Approver) error
}

type VenueRepository interface {
	GetAll(ctx context.Context) ([]*entity.Venue, error)
	GetByName(ctx context.Context, name string) (*entity.Venue, error)
	ReplaceAll(ctx context.Context, venues []*entity.Venue) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByExternalID(ctx context.Context, externalID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	IsApprover(ctx context.Context, email string) (bool, error)
	UpdateUserType(ctx context.Context, email string, userType entity.UserType) error
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/pkg/aiclient"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEventStore keeps one event in memory and applies approval decisions
// the way the collection update does: only a pending entry for the given
// email flips, everything else is left alone.
type fakeEventStore struct {
	event *entity.Event
}

func (f *fakeEventStore) repo() *mockEventRepo {
	return &mockEventRepo{
		createFn: func(ctx context.Context, event *entity.Event) error {
			event.ID = primitive.NewObjectID()
			f.event = event
			return nil
		},
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*entity.Event, error) {
			if f.event == nil || f.event.ID != id {
				return nil, entity.ErrEventNotFound
			}
			return f.event, nil
		},
		getHistoryFn: func(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error) {
			return nil, nil
		},
		updateApproverStatusFn: func(ctx context.Context, eventID primitive.ObjectID, approverEmail string, status entity.ApprovalStatus, actedAt time.Time) (*entity.Event, error) {
			if f.event == nil || f.event.ID != eventID {
				return nil, entity.ErrEventNotFound
			}
			for i := range f.event.Approvers {
				a := &f.event.Approvers[i]
				if a.Email == approverEmail && a.Status == entity.ApprovalStatusPending {
					a.Status = status
					a.ActedAt = &actedAt
					return f.event, nil
				}
			}
			return nil, entity.ErrApproverNotFound
		},
	}
}

// Walks the whole lifecycle of a tech event: submission snapshots the
// chain, both approvals complete it, the recommendation is generated once,
// and confirmation notifies the organizer plus the known resource teams.
func TestEventLifecycle(t *testing.T) {
	ctx := context.Background()
	store := &fakeEventStore{}
	eventRepo := store.repo()

	allocations := map[primitive.ObjectID]*entity.ResourceAllocation{}
	resourceRepo := &mockResourceRepo{
		upsertFn: func(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error) {
			allocations[eventID] = &entity.ResourceAllocation{
				EventID:     eventID,
				Recommended: recommended,
				Status:      entity.AllocationStatusPending,
				GeneratedAt: generatedAt,
			}
			return allocations[eventID], nil
		},
		confirmFn: func(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error) {
			a, ok := allocations[eventID]
			if !ok {
				return nil, entity.ErrAllocationNotFound
			}
			a.Edited = edited
			a.Status = entity.AllocationStatusConfirmed
			a.ConfirmedBy = confirmedBy
			return a, nil
		},
		getByEventIDsFn: func(ctx context.Context, eventIDs []primitive.ObjectID) ([]*entity.ResourceAllocation, error) {
			return nil, nil
		},
	}

	recommendCalls := 0
	recommender := &stubRecommender{
		fn: func(ctx context.Context, req *aiclient.RecommendationRequest) (map[string]interface{}, error) {
			recommendCalls++
			return map[string]interface{}{"mic": true, "chairs": float64(50)}, nil
		},
	}
	mail := &stubMailer{}

	eventSvc := NewEventService(eventRepo, &mockVenueRepo{}, &stubChains{chain: techChain()}, nil, nil, mail, nil)
	resourceSvc := NewResourceService(resourceRepo, eventRepo, recommender, mail, nil, nil)
	approvalSvc := NewApprovalService(eventRepo, resourceSvc, nil)

	event, err := eventSvc.SubmitEvent(ctx, &SubmitEventRequest{
		Title:              "Tech Symposium",
		Date:               "2026-09-15",
		Venue:              "Main Auditorium",
		EventType:          "tech",
		Organizer:          "organizer@x.edu",
		ExpectedAttendance: 120,
	})
	assert.NoError(t, err)
	assert.Len(t, event.Approvers, 2)

	// First approval leaves the chain incomplete, nothing recommended yet.
	updated, err := approvalSvc.RecordDecision(ctx, event.ID.Hex(), "TechLead@University.EDU", "approved")
	assert.NoError(t, err)
	assert.False(t, updated.FullyApproved())
	assert.Zero(t, recommendCalls)

	updated, err = approvalSvc.RecordDecision(ctx, event.ID.Hex(), "hod@university.edu", "approved")
	assert.NoError(t, err)
	assert.True(t, updated.FullyApproved())
	assert.Equal(t, 1, recommendCalls)

	allocation := allocations[event.ID]
	assert.NotNil(t, allocation)
	assert.Equal(t, entity.AllocationStatusPending, allocation.Status)
	assert.Equal(t, true, allocation.Recommended["mic"])

	confirmed, statuses, err := resourceSvc.ConfirmAllocation(ctx, &ConfirmRequest{
		EventID:     event.ID.Hex(),
		Edited:      entity.ResourceMap{"mic": true, "chairs": 60, "camera": true},
		ConfirmedBy: "organizer@x.edu",
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusConfirmed, confirmed.Status)
	assert.Equal(t, entity.ResourceMap{"mic": true, "chairs": 60, "camera": true}, confirmed.Edited)

	// Organizer plus the two resources with known contacts; chairs has no
	// contact so it gets no notification entry.
	byResource := statusByResource(statuses)
	assert.Len(t, statuses, 3)
	assert.Equal(t, "success", byResource["organizer"].Status)
	assert.Equal(t, "success", byResource["mic"].Status)
	assert.Equal(t, "success", byResource["camera"].Status)
	assert.NotContains(t, byResource, "chairs")

	// No second recommendation anywhere along the way.
	assert.Equal(t, 1, recommendCalls)

	report := NewReportService(eventRepo, &mockResourceRepo{
		getByEventIDFn: func(ctx context.Context, eventID primitive.ObjectID) (*entity.ResourceAllocation, error) {
			return allocations[eventID], nil
		},
	}, &mockVenueRepo{
		getByNameFn: func(ctx context.Context, name string) (*entity.Venue, error) {
			return &entity.Venue{Name: name, Capacity: 200}, nil
		},
	})
	r, err := report.Report(ctx, event.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusConfirmed, r.Resource.Status)
	assert.Equal(t, "Main Auditorium", r.Venue.Name)
}

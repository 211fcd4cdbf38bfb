package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/pkg/aiclient"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecommend_StoresPendingAllocation(t *testing.T) {
	id := primitive.NewObjectID()
	pastID := primitive.NewObjectID()

	eventRepo := &mockEventRepo{
		getByIDFn: func(ctx context.Context, eventID primitive.ObjectID) (*entity.Event, error) {
			return &entity.Event{
				ID: id, Title: "Tech Symposium", EventType: "tech", Venue: "Main Auditorium",
				DurationDays: 2, ExpectedAttendance: 120,
			}, nil
		},
		getHistoryFn: func(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error) {
			assert.Equal(t, "tech", eventType)
			assert.Equal(t, "Main Auditorium", venue)
			assert.EqualValues(t, 5, limit)
			return []*entity.Event{
				{ID: pastID, EventType: "tech", Venue: "Main Auditorium"},
				{ID: primitive.NewObjectID(), EventType: "tech", Venue: "Main Auditorium"},
			}, nil
		},
	}
	resourceRepo := &mockResourceRepo{
		getByEventIDsFn: func(ctx context.Context, eventIDs []primitive.ObjectID) ([]*entity.ResourceAllocation, error) {
			return []*entity.ResourceAllocation{
				{EventID: pastID, Recommended: entity.ResourceMap{"mic": true}},
			}, nil
		},
		upsertFn: func(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error) {
			assert.Equal(t, id, eventID)
			return &entity.ResourceAllocation{
				EventID:     eventID,
				Recommended: recommended,
				Status:      entity.AllocationStatusPending,
				GeneratedAt: generatedAt,
			}, nil
		},
	}

	var gotReq *aiclient.RecommendationRequest
	recommender := &stubRecommender{
		fn: func(ctx context.Context, req *aiclient.RecommendationRequest) (map[string]interface{}, error) {
			gotReq = req
			return map[string]interface{}{"mic": true, "chairs": float64(50)}, nil
		},
	}

	svc := NewResourceService(resourceRepo, eventRepo, recommender, nil, nil, nil)
	allocation, err := svc.Recommend(context.Background(), id.Hex())

	assert.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusPending, allocation.Status)
	assert.Equal(t, true, allocation.Recommended["mic"])

	assert.Equal(t, "tech", gotReq.EventType)
	assert.Equal(t, 2, gotReq.DurationDays)
	assert.Equal(t, 120, gotReq.ExpectedAttendance)
	assert.Len(t, gotReq.PastEvents, 2)
	assert.Equal(t, map[string]interface{}{"mic": true}, gotReq.PastEvents[0].Resources)
	assert.Empty(t, gotReq.PastEvents[1].Resources)
}

func TestRecommend_UpsertKeyedOnEventID(t *testing.T) {
	id := primitive.NewObjectID()

	eventRepo := &mockEventRepo{
		getByIDFn: func(ctx context.Context, eventID primitive.ObjectID) (*entity.Event, error) {
			return &entity.Event{ID: id, EventType: "tech", Venue: "Seminar Hall"}, nil
		},
		getHistoryFn: func(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error) {
			return nil, nil
		},
	}

	// In-memory upsert keyed on event id, mirroring the collection's
	// FindOneAndUpdate semantics.
	store := map[primitive.ObjectID]*entity.ResourceAllocation{}
	resourceRepo := &mockResourceRepo{
		upsertFn: func(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error) {
			store[eventID] = &entity.ResourceAllocation{EventID: eventID, Recommended: recommended, Status: entity.AllocationStatusPending}
			return store[eventID], nil
		},
	}
	recommender := &stubRecommender{
		fn: func(ctx context.Context, req *aiclient.RecommendationRequest) (map[string]interface{}, error) {
			return map[string]interface{}{"projector": true}, nil
		},
	}

	svc := NewResourceService(resourceRepo, eventRepo, recommender, nil, nil, nil)
	_, err := svc.Recommend(context.Background(), id.Hex())
	assert.NoError(t, err)
	_, err = svc.Recommend(context.Background(), id.Hex())
	assert.NoError(t, err)

	assert.Len(t, store, 1)
}

func TestRecommend_RecommenderFailure(t *testing.T) {
	id := primitive.NewObjectID()
	eventRepo := &mockEventRepo{
		getByIDFn: func(ctx context.Context, eventID primitive.ObjectID) (*entity.Event, error) {
			return &entity.Event{ID: id, EventType: "tech", Venue: "Seminar Hall"}, nil
		},
		getHistoryFn: func(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error) {
			return nil, nil
		},
	}
	upsertCalled := false
	resourceRepo := &mockResourceRepo{
		upsertFn: func(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error) {
			upsertCalled = true
			return nil, nil
		},
	}
	recommender := &stubRecommender{
		fn: func(ctx context.Context, req *aiclient.RecommendationRequest) (map[string]interface{}, error) {
			return nil, errors.New("upstream timeout")
		},
	}

	svc := NewResourceService(resourceRepo, eventRepo, recommender, nil, nil, nil)
	_, err := svc.Recommend(context.Background(), id.Hex())

	assert.Error(t, err)
	assert.False(t, upsertCalled)
}

func TestRecommend_EventNotFound(t *testing.T) {
	eventRepo := &mockEventRepo{
		getByIDFn: func(ctx context.Context, eventID primitive.ObjectID) (*entity.Event, error) {
			return nil, entity.ErrEventNotFound
		},
	}
	svc := NewResourceService(&mockResourceRepo{}, eventRepo, &stubRecommender{}, nil, nil, nil)

	_, err := svc.Recommend(context.Background(), primitive.NewObjectID().Hex())

	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}

func confirmFixture(id primitive.ObjectID, mail *stubMailer, hook CardPoster) ResourceService {
	eventRepo := &mockEventRepo{
		getByIDFn: func(ctx context.Context, eventID primitive.ObjectID) (*entity.Event, error) {
			return &entity.Event{
				ID: id, Title: "Tech Symposium", Date: "2026-09-15",
				Venue: "Main Auditorium", Organizer: "organizer@x.edu",
			}, nil
		},
	}
	resourceRepo := &mockResourceRepo{
		confirmFn: func(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error) {
			return &entity.ResourceAllocation{
				EventID:     eventID,
				Edited:      edited,
				Status:      entity.AllocationStatusConfirmed,
				ConfirmedBy: confirmedBy,
			}, nil
		},
	}
	return NewResourceService(resourceRepo, eventRepo, nil, mail, hook, nil)
}

func statusByResource(statuses []NotificationStatus) map[string]NotificationStatus {
	out := make(map[string]NotificationStatus, len(statuses))
	for _, st := range statuses {
		out[st.Resource] = st
	}
	return out
}

func TestConfirmAllocation_PartialMailFailure(t *testing.T) {
	id := primitive.NewObjectID()
	mail := &stubMailer{failTo: map[string]error{
		"mic-team@university.edu": errors.New("smtp refused"),
	}}
	svc := confirmFixture(id, mail, nil)

	allocation, statuses, err := svc.ConfirmAllocation(context.Background(), &ConfirmRequest{
		EventID:     id.Hex(),
		Edited:      entity.ResourceMap{"camera": true, "mic": true, "projector": 2},
		ConfirmedBy: "organizer@x.edu",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusConfirmed, allocation.Status)

	byResource := statusByResource(statuses)
	assert.Equal(t, "error", byResource["mic"].Status)
	assert.Equal(t, "smtp refused", byResource["mic"].Error)
	assert.Equal(t, "success", byResource["camera"].Status)
	assert.Equal(t, "success", byResource["projector"].Status)
	assert.Equal(t, "success", byResource["organizer"].Status)
	assert.Equal(t, "organizer@x.edu", byResource["organizer"].To)
}

func TestConfirmAllocation_UnknownResourceSkipped(t *testing.T) {
	id := primitive.NewObjectID()
	mail := &stubMailer{}
	svc := confirmFixture(id, mail, nil)

	_, statuses, err := svc.ConfirmAllocation(context.Background(), &ConfirmRequest{
		EventID:     id.Hex(),
		Edited:      entity.ResourceMap{"mic": true, "chairs": 60},
		ConfirmedBy: "organizer@x.edu",
	})

	assert.NoError(t, err)
	byResource := statusByResource(statuses)
	assert.Contains(t, byResource, "mic")
	assert.Contains(t, byResource, "organizer")
	assert.NotContains(t, byResource, "chairs")
}

func TestConfirmAllocation_WebhookFailureIsolated(t *testing.T) {
	id := primitive.NewObjectID()
	mail := &stubMailer{}
	hook := &stubCardPoster{err: errors.New("webhook 500")}
	svc := confirmFixture(id, mail, hook)

	allocation, statuses, err := svc.ConfirmAllocation(context.Background(), &ConfirmRequest{
		EventID:     id.Hex(),
		Edited:      entity.ResourceMap{"mic": true},
		ConfirmedBy: "organizer@x.edu",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusConfirmed, allocation.Status)

	byResource := statusByResource(statuses)
	assert.Equal(t, "error", byResource["webhook"].Status)
	assert.Equal(t, "success", byResource["organizer"].Status)
	assert.Equal(t, "success", byResource["mic"].Status)
}

func TestConfirmAllocation_MissingParameters(t *testing.T) {
	svc := NewResourceService(&mockResourceRepo{}, &mockEventRepo{}, nil, nil, nil, nil)

	_, _, err := svc.ConfirmAllocation(context.Background(), &ConfirmRequest{
		EventID: primitive.NewObjectID().Hex(),
	})

	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestConfirmAllocation_AllocationNotFound(t *testing.T) {
	resourceRepo := &mockResourceRepo{
		confirmFn: func(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error) {
			return nil, entity.ErrAllocationNotFound
		},
	}
	svc := NewResourceService(resourceRepo, &mockEventRepo{}, nil, nil, nil, nil)

	_, _, err := svc.ConfirmAllocation(context.Background(), &ConfirmRequest{
		EventID:     primitive.NewObjectID().Hex(),
		Edited:      entity.ResourceMap{"mic": true},
		ConfirmedBy: "organizer@x.edu",
	})

	assert.ErrorIs(t, err, entity.ErrAllocationNotFound)
}

func TestConfirmAllocation_EventLookupFailureSkipsNotifications(t *testing.T) {
	id := primitive.NewObjectID()
	resourceRepo := &mockResourceRepo{
		confirmFn: func(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error) {
			return &entity.ResourceAllocation{EventID: eventID, Status: entity.AllocationStatusConfirmed}, nil
		},
	}
	eventRepo := &mockEventRepo{
		getByIDFn: func(ctx context.Context, eventID primitive.ObjectID) (*entity.Event, error) {
			return nil, entity.ErrEventNotFound
		},
	}
	mail := &stubMailer{}
	svc := NewResourceService(resourceRepo, eventRepo, nil, mail, nil, nil)

	allocation, statuses, err := svc.ConfirmAllocation(context.Background(), &ConfirmRequest{
		EventID:     id.Hex(),
		Edited:      entity.ResourceMap{"mic": true},
		ConfirmedBy: "organizer@x.edu",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusConfirmed, allocation.Status)
	assert.Empty(t, statuses)
	assert.Empty(t, mail.sent)
}

func TestAllocationsForOrganizer(t *testing.T) {
	eventID := primitive.NewObjectID()
	eventRepo := &mockEventRepo{
		getByOrganizerFn: func(ctx context.Context, email string) ([]*entity.Event, error) {
			assert.Equal(t, "organizer@x.edu", email)
			return []*entity.Event{{ID: eventID}}, nil
		},
	}
	resourceRepo := &mockResourceRepo{
		getByEventIDsFn: func(ctx context.Context, eventIDs []primitive.ObjectID) ([]*entity.ResourceAllocation, error) {
			assert.Equal(t, []primitive.ObjectID{eventID}, eventIDs)
			return []*entity.ResourceAllocation{{EventID: eventID}}, nil
		},
	}
	svc := NewResourceService(resourceRepo, eventRepo, nil, nil, nil, nil)

	allocations, err := svc.AllocationsForOrganizer(context.Background(), "Organizer@X.EDU")

	assert.NoError(t, err)
	assert.Len(t, allocations, 1)
}

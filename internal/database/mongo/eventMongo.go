package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type eventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{coll: db.Collection("events")}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	res, err := r.coll.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Event, error) {
	var event entity.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entity.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (r *eventRepository) GetByOrganizer(ctx context.Context, email string) ([]*entity.Event, error) {
	return r.find(ctx, bson.M{"organizer": email}, nil)
}

func (r *eventRepository) GetByApprover(ctx context.Context, email string) ([]*entity.Event, error) {
	return r.find(ctx, bson.M{"approvers.email": email}, nil)
}

// GetFullyApproved returns events where no approver entry has a status other
// than approved.
func (r *eventRepository) GetFullyApproved(ctx context.Context) ([]*entity.Event, error) {
	filter := bson.M{
		"approvers": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{"status": bson.M{"$ne": entity.ApprovalStatusApproved}},
			},
		},
	}
	return r.find(ctx, filter, nil)
}

// GetHistory returns up to limit prior events of the same category and venue
// whose chain has at least one approved entry, newest first.
func (r *eventRepository) GetHistory(ctx context.Context, eventType, venue string, limit int64) ([]*entity.Event, error) {
	filter := bson.M{
		"eventType":        eventType,
		"venue":            venue,
		"approvers.status": entity.ApprovalStatusApproved,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, filter, opts)
}

func (r *eventRepository) DeleteByApprover(ctx context.Context, email string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"approvers.email": email})
	if err != nil {
		return 0, fmt.Errorf("failed to delete events for approver: %w", err)
	}
	return res.DeletedCount, nil
}

// UpdateApproverStatus sets one approver entry's status and actedAt in a
// single filtered positional update and returns the updated event. The
// filter requires the approver email to be present, so a missing event and
// a missing approver both surface as ErrApproverNotFound.
func (r *eventRepository) UpdateApproverStatus(ctx context.Context, eventID primitive.ObjectID, approverEmail string, status entity.ApprovalStatus, actedAt time.Time) (*entity.Event, error) {
	filter := bson.M{"_id": eventID, "approvers.email": approverEmail}
	update := bson.M{"$set": bson.M{
		"approvers.$[elem].status":  status,
		"approvers.$[elem].actedAt": actedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"elem.email": approverEmail}},
		})

	var event entity.Event
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrApproverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update approver status: %w", err)
	}
	return &event, nil
}

func (r *eventRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Event, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*entity.Event
	for cursor.Next(ctx) {
		var event entity.Event
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("failed to decode event: %w", err)
		}
		events = append(events, &event)
	}
	return events, cursor.Err()
}

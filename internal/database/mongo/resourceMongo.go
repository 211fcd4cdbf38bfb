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

type resourceRepository struct {
	coll *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) ResourceRepository {
	return &resourceRepository{coll: db.Collection("event_resources")}
}

// UpsertRecommendation stores the recommender output for an event. The upsert
// is keyed on event_id: a re-completion overwrites the previous document
// instead of duplicating it.
func (r *resourceRepository) UpsertRecommendation(ctx context.Context, eventID primitive.ObjectID, recommended entity.ResourceMap, generatedAt time.Time) (*entity.ResourceAllocation, error) {
	filter := bson.M{"event_id": eventID}
	update := bson.M{"$set": bson.M{
		"event_id":              eventID,
		"recommended_resources": recommended,
		"status":                entity.AllocationStatusPending,
		"generated_at":          generatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var alloc entity.ResourceAllocation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&alloc); err != nil {
		return nil, fmt.Errorf("failed to upsert resource recommendation: %w", err)
	}
	return &alloc, nil
}

// Confirm flips an existing allocation to confirmed. There is no upsert here:
// confirming without a prior recommendation is a NotFound.
func (r *resourceRepository) Confirm(ctx context.Context, eventID primitive.ObjectID, edited entity.ResourceMap, confirmedBy string, confirmedAt time.Time) (*entity.ResourceAllocation, error) {
	filter := bson.M{"event_id": eventID}
	update := bson.M{"$set": bson.M{
		"edited_resources": edited,
		"status":           entity.AllocationStatusConfirmed,
		"confirmed_by":     confirmedBy,
		"confirmed_at":     confirmedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var alloc entity.ResourceAllocation
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&alloc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrAllocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to confirm resource allocation: %w", err)
	}
	return &alloc, nil
}

func (r *resourceRepository) GetByEventID(ctx context.Context, eventID primitive.ObjectID) (*entity.ResourceAllocation, error) {
	var alloc entity.ResourceAllocation
	err := r.coll.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&alloc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrAllocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource allocation: %w", err)
	}
	return &alloc, nil
}

func (r *resourceRepository) GetByEventIDs(ctx context.Context, eventIDs []primitive.ObjectID) ([]*entity.ResourceAllocation, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"event_id": bson.M{"$in": eventIDs}})
}

func (r *resourceRepository) GetConfirmed(ctx context.Context) ([]*entity.ResourceAllocation, error) {
	return r.find(ctx, bson.M{"status": entity.AllocationStatusConfirmed})
}

func (r *resourceRepository) find(ctx context.Context, filter bson.M) ([]*entity.ResourceAllocation, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query resource allocations: %w", err)
	}
	defer cursor.Close(ctx)

	var allocs []*entity.ResourceAllocation
	for cursor.Next(ctx) {
		var alloc entity.ResourceAllocation
		if err := cursor.Decode(&alloc); err != nil {
			return nil, fmt.Errorf("failed to decode resource allocation: %w", err)
		}
		allocs = append(allocs, &alloc)
	}
	return allocs, cursor.Err()
}

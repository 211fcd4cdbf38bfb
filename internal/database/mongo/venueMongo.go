package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type venueRepository struct {
	coll *mongo.Collection
}

func NewVenueRepository(db *mongo.Database) VenueRepository {
	return &venueRepository{coll: db.Collection("venues")}
}

func (r *venueRepository) GetAll(ctx context.Context) ([]*entity.Venue, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer cursor.Close(ctx)

	var venues []*entity.Venue
	for cursor.Next(ctx) {
		var venue entity.Venue
		if err := cursor.Decode(&venue); err != nil {
			return nil, fmt.Errorf("failed to decode venue: %w", err)
		}
		venues = append(venues, &venue)
	}
	return venues, cursor.Err()
}

func (r *venueRepository) GetByName(ctx context.Context, name string) (*entity.Venue, error) {
	var venue entity.Venue
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&venue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &venue, nil
}

func (r *venueRepository) ReplaceAll(ctx context.Context, venues []*entity.Venue) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear venues: %w", err)
	}

	if len(venues) == 0 {
		return nil
	}

	docs := make([]interface{}, len(venues))
	for i, v := range venues {
		docs[i] = v
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert venues: %w", err)
	}
	return nil
}

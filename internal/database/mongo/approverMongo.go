package repository

import (
	"context"
	"fmt"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type approverRepository struct {
	coll *mongo.Collection
}

func NewApproverRepository(db *mongo.Database) ApproverRepository {
	return &approverRepository{coll: db.Collection("approvers")}
}

func (r *approverRepository) GetAll(ctx context.Context) ([]*entity.Approver, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvers: %w", err)
	}
	defer cursor.Close(ctx)

	var approvers []*entity.Approver
	for cursor.Next(ctx) {
		var approver entity.Approver
		if err := cursor.Decode(&approver); err != nil {
			return nil, fmt.Errorf("failed to decode approver: %w", err)
		}
		approvers = append(approvers, &approver)
	}
	return approvers, cursor.Err()
}

// ReplaceAll reseeds the registry collection: delete everything, insert the
// new set. Callers swap the in-memory snapshot afterwards.
func (r *approverRepository) ReplaceAll(ctx context.Context, approvers []*entity.Approver) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear approvers: %w", err)
	}

	if len(approvers) == 0 {
		return nil
	}

	docs := make([]interface{}, len(approvers))
	for i, a := range approvers {
		docs[i] = a
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert approvers: %w", err)
	}
	return nil
}

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
)

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection("users")}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UserType == "" {
		user.UserType = entity.UserTypeNone
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"external_id": externalID})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) IsApprover(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"email":    email,
		"userType": entity.UserTypeApprover,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check approver: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) UpdateUserType(ctx context.Context, email string, userType entity.UserType) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"userType": userType}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user type: %w", err)
	}
	if res.MatchedCount == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var user entity.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

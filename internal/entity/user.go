package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeNone      UserType = "none"
	UserTypeStudent   UserType = "student"
	UserTypeOrganizer UserType = "organizer"
	UserTypeApprover  UserType = "approver"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	UserType   UserType           `bson:"userType" json:"userType"`
	ExternalID string             `bson:"external_id" json:"external_id"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

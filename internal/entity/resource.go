package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AllocationStatus string

const (
	AllocationStatusPending   AllocationStatus = "pending"
	AllocationStatusConfirmed AllocationStatus = "confirmed"
)

// ResourceMap is an opaque resource-key to quantity-or-flag mapping. The
// recommender's response is stored verbatim, no schema is imposed.
type ResourceMap map[string]interface{}

// ResourceAllocation holds the recommended and organizer-confirmed resources
// for an event. At most one allocation exists per event (upsert on event_id).
type ResourceAllocation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID     primitive.ObjectID `bson:"event_id" json:"event_id"`
	Recommended ResourceMap        `bson:"recommended_resources" json:"recommended_resources"`
	Edited      ResourceMap        `bson:"edited_resources,omitempty" json:"edited_resources,omitempty"`
	Status      AllocationStatus   `bson:"status" json:"status"`
	ConfirmedBy string             `bson:"confirmed_by,omitempty" json:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time         `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	GeneratedAt time.Time          `bson:"generated_at" json:"generated_at"`
}

// EffectiveResources returns the organizer-edited mapping, falling back to
// the recommended one when no edit has been made.
func (r *ResourceAllocation) EffectiveResources() ResourceMap {
	if len(r.Edited) > 0 {
		return r.Edited
	}
	return r.Recommended
}

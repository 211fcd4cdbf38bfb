package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Approver is one registry entry of the approval chain configuration.
// The chain for a category is the subset whose EventTypes contain it,
// sorted by Order ascending (ties keep insertion order).
type Approver struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Role       string             `bson:"role" json:"role"`
	Email      string             `bson:"email" json:"email"`
	EventTypes []string           `bson:"event_types" json:"event_types"`
	Order      int                `bson:"order" json:"order"`
}

// AppliesTo reports whether this entry belongs to the given event category.
func (a *Approver) AppliesTo(eventType string) bool {
	for _, t := range a.EventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VenueBooking is an informational booking tuple; capacity and overlap are
// not enforced here.
type VenueBooking struct {
	EventID primitive.ObjectID `bson:"eventId" json:"eventId"`
	Date    string             `bson:"date" json:"date"`
}

type Venue struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Capacity int                `bson:"capacity" json:"capacity"`
	Bookings []VenueBooking     `bson:"bookings,omitempty" json:"bookings,omitempty"`
}

package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// ApproverStatus is one entry of an event's approval chain. The list is
// snapshotted from the approver registry when the event is submitted;
// later registry changes never touch existing events.
type ApproverStatus struct {
	Email   string         `bson:"email" json:"email"`
	Role    string         `bson:"role" json:"role"`
	Status  ApprovalStatus `bson:"status" json:"status"`
	ActedAt *time.Time     `bson:"actedAt,omitempty" json:"actedAt,omitempty"`
}

type Event struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description" json:"description"`
	Date               string             `bson:"date" json:"date"`
	Venue              string             `bson:"venue" json:"venue"`
	EventType          string             `bson:"eventType" json:"eventType"`
	Organizer          string             `bson:"organizer" json:"organizer"`
	Approvers          []ApproverStatus   `bson:"approvers" json:"approvers"`
	DurationDays       int                `bson:"duration_days" json:"duration_days"`
	ExpectedAttendance int                `bson:"expected_attendance" json:"expected_attendance"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// FullyApproved reports chain completion: every approver entry is approved.
// A single rejected or pending entry keeps the chain incomplete.
func (e *Event) FullyApproved() bool {
	if len(e.Approvers) == 0 {
		return false
	}
	for _, a := range e.Approvers {
		if a.Status != ApprovalStatusApproved {
			return false
		}
	}
	return true
}

// PrioritizedEvent is an event decorated by the external prioritizer.
type PrioritizedEvent struct {
	Event
	Priority string  `json:"priority,omitempty"`
	Score    float64 `json:"score,omitempty"`
}

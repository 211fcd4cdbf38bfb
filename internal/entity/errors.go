package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound    = errors.New("event not found")
	ErrApproverNotFound = errors.New("event or approver not found")
	ErrInvalidEventID   = errors.New("invalid event id")
	ErrInvalidDecision  = errors.New("decision must be approved or rejected")

	// Resource allocation errors
	ErrAllocationNotFound = errors.New("resource allocation not found")

	// Venue errors
	ErrVenueNotFound = errors.New("venue not found")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidRole   = errors.New("invalid user type")
	ErrTokenRejected = errors.New("invalid or expired token")
	ErrMissingBearer = errors.New("missing or invalid authorization header")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
)

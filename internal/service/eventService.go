package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/actionhub-org/HappyFox-practice/internal/database/mongo"
	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/internal/slots"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmitEventRequest represents the data needed to submit an event for
// approval. ExpectedCount is an accepted alias for ExpectedAttendance kept
// for older clients.
type SubmitEventRequest struct {
	Title              string `json:"title" binding:"required,min=1,max=255"`
	Description        string `json:"description" binding:"max=2000"`
	Date               string `json:"date" binding:"required"`
	Venue              string `json:"venue" binding:"required"`
	EventType          string `json:"eventType" binding:"required"`
	Organizer          string `json:"organizer" binding:"required,email"`
	DurationDays       int    `json:"duration_days" binding:"omitempty,min=1,max=30"`
	ExpectedAttendance int    `json:"expected_attendance" binding:"omitempty,min=0"`
	ExpectedCount      int    `json:"expected_count" binding:"omitempty,min=0"`
}

// SuggestSlotsRequest bounds a free-slot scan
type SuggestSlotsRequest struct {
	AfterDate     string `json:"afterDate" binding:"required"`
	BeforeDate    string `json:"beforeDate" binding:"required"`
	DurationHours int    `json:"durationHours" binding:"omitempty,min=1,max=9"`
	VenueName     string `json:"venueName"`
}

// VolunteerRequest is a volunteer application for an event
type VolunteerRequest struct {
	EventID      string `json:"eventId" binding:"required"`
	Name         string `json:"name"`
	Email        string `json:"email" binding:"required,email"`
	Availability string `json:"availability"`
	Reason       string `json:"reason"`
}

// ParticipantRequest is a participation application for an event
type ParticipantRequest struct {
	EventID string `json:"eventId" binding:"required"`
	Name    string `json:"name"`
	Email   string `json:"email" binding:"required,email"`
	Reason  string `json:"reason"`
}

// ApproverChains resolves the approval chain for an event category
type ApproverChains interface {
	ChainFor(eventType string) []*entity.Approver
}

// Prioritizer ranks events for an approver's worklist
type Prioritizer interface {
	PrioritizeEvents(ctx context.Context, payload interface{}, out interface{}) error
}

// DateSuggester turns a free-text description into a date suggestion
type DateSuggester interface {
	SuggestDate(ctx context.Context, description string) (map[string]interface{}, error)
}

type eventService struct {
	eventRepo   repository.EventRepository
	venueRepo   repository.VenueRepository
	chains      ApproverChains
	prioritizer Prioritizer
	suggester   DateSuggester
	mail        MailSender
	calendar    []slots.Interval
}

// NewEventService creates a new instance of EventService
func NewEventService(
	eventRepo repository.EventRepository,
	venueRepo repository.VenueRepository,
	chains ApproverChains,
	prioritizer Prioritizer,
	suggester DateSuggester,
	mail MailSender,
	calendar []slots.Interval,
) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		venueRepo:   venueRepo,
		chains:      chains,
		prioritizer: prioritizer,
		suggester:   suggester,
		mail:        mail,
		calendar:    calendar,
	}
}

func (s *eventService) SubmitEvent(ctx context.Context, req *SubmitEventRequest) (*entity.Event, error) {
	if req.Title == "" || req.Date == "" || req.Venue == "" || req.Organizer == "" {
		return nil, entity.ErrInvalidInput
	}

	eventType := strings.ToLower(strings.TrimSpace(req.EventType))

	chain := s.chains.ChainFor(eventType)
	approvers := make([]entity.ApproverStatus, 0, len(chain))
	for _, a := range chain {
		approvers = append(approvers, entity.ApproverStatus{
			Email:  a.Email,
			Role:   a.Role,
			Status: entity.ApprovalStatusPending,
		})
	}

	durationDays := req.DurationDays
	if durationDays == 0 {
		durationDays = 1
	}
	expected := req.ExpectedAttendance
	if expected == 0 {
		expected = req.ExpectedCount
	}

	event := &entity.Event{
		Title:              req.Title,
		Description:        req.Description,
		Date:               req.Date,
		Venue:              req.Venue,
		EventType:          eventType,
		Organizer:          strings.ToLower(req.Organizer),
		Approvers:          approvers,
		DurationDays:       durationDays,
		ExpectedAttendance: expected,
		CreatedAt:          time.Now(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to submit event: %w", err)
	}

	return event, nil
}

func (s *eventService) EventsForOrganizer(ctx context.Context, email string) ([]*entity.Event, error) {
	events, err := s.eventRepo.GetByOrganizer(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get organizer events: %w", err)
	}
	return events, nil
}

// EventsForApprover returns the approver's worklist, decorated by the
// prioritizer when it is reachable. Any upstream failure falls back to the
// undecorated list.
func (s *eventService) EventsForApprover(ctx context.Context, email string) ([]*entity.PrioritizedEvent, error) {
	events, err := s.eventRepo.GetByApprover(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get approver events: %w", err)
	}

	plain := make([]*entity.PrioritizedEvent, 0, len(events))
	for _, e := range events {
		plain = append(plain, &entity.PrioritizedEvent{Event: *e})
	}

	if s.prioritizer == nil || len(events) == 0 {
		return plain, nil
	}

	var prioritized []*entity.PrioritizedEvent
	if err := s.prioritizer.PrioritizeEvents(ctx, events, &prioritized); err != nil {
		logrus.WithError(err).Warn("prioritizer unavailable, returning unranked events")
		return plain, nil
	}
	if len(prioritized) != len(events) {
		logrus.Warnf("prioritizer returned %d events for %d, returning unranked events", len(prioritized), len(events))
		return plain, nil
	}

	return prioritized, nil
}

func (s *eventService) ApprovedEvents(ctx context.Context) ([]*entity.Event, error) {
	events, err := s.eventRepo.GetFullyApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved events: %w", err)
	}
	return events, nil
}

func (s *eventService) PurgeByApprover(ctx context.Context, email string) (int64, error) {
	if email == "" {
		return 0, entity.ErrInvalidInput
	}
	deleted, err := s.eventRepo.DeleteByApprover(ctx, strings.ToLower(email))
	if err != nil {
		return 0, fmt.Errorf("failed to purge events: %w", err)
	}
	return deleted, nil
}

// SuggestSlots scans working hours between the two dates and drops
// candidates conflicting with the academic calendar or the venue's
// bookings.
func (s *eventService) SuggestSlots(ctx context.Context, req *SuggestSlotsRequest) ([]string, error) {
	after, err := parseDate(req.AfterDate)
	if err != nil {
		return nil, entity.ErrInvalidInput
	}
	before, err := parseDate(req.BeforeDate)
	if err != nil {
		return nil, entity.ErrInvalidInput
	}

	busy := make([]slots.Interval, 0, len(s.calendar))
	busy = append(busy, s.calendar...)

	if req.VenueName != "" {
		venue, err := s.venueRepo.GetByName(ctx, req.VenueName)
		if err == nil {
			for _, b := range venue.Bookings {
				if day, err := parseDate(b.Date); err == nil {
					busy = append(busy, slots.Interval{
						Start: day,
						End:   day.AddDate(0, 0, 1),
					})
				}
			}
		} else if err != entity.ErrVenueNotFound {
			return nil, fmt.Errorf("failed to load venue bookings: %w", err)
		}
	}

	starts := slots.Suggest(slots.Params{
		After:         after,
		Before:        before,
		DurationHours: req.DurationHours,
	}, busy)

	out := make([]string, 0, len(starts))
	for _, t := range starts {
		out = append(out, t.Format(time.RFC3339))
	}
	return out, nil
}

func (s *eventService) QuickApply(ctx context.Context, description string) (map[string]interface{}, error) {
	if strings.TrimSpace(description) == "" {
		return nil, entity.ErrInvalidInput
	}
	if s.suggester == nil {
		return nil, fmt.Errorf("date suggestion service is not configured")
	}

	suggestion, err := s.suggester.SuggestDate(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("failed to get date suggestion: %w", err)
	}
	return suggestion, nil
}

func (s *eventService) ApplyVolunteer(ctx context.Context, req *VolunteerRequest) error {
	event, err := s.getEvent(ctx, req.EventID)
	if err != nil {
		return err
	}

	greeting := "Hello"
	if req.Name != "" {
		greeting += " " + req.Name
	}
	subject := fmt.Sprintf("Volunteer Application Confirmation for %s", event.Title)
	text := fmt.Sprintf("%s,\n\nThank you for applying as a volunteer for the event: %s.\n\n"+
		"Event Details:\n- Date: %s\n- Venue: %s\n- Organizer: %s\n\n"+
		"Your Availability for whole event: %s\nReason for interest: %s\n\n"+
		"We will contact you with further details.\n\nBest regards,\nCampus Event Automation Team",
		greeting, event.Title, event.Date, event.Venue,
		orNA(event.Organizer), orNA(req.Availability), orNA(req.Reason))

	if s.mail == nil {
		logrus.Warn("mailer not configured, skipping volunteer confirmation email")
		return nil
	}
	if err := s.mail.Send(req.Email, subject, text, ""); err != nil {
		return fmt.Errorf("failed to send volunteer confirmation: %w", err)
	}
	return nil
}

func (s *eventService) ApplyParticipant(ctx context.Context, req *ParticipantRequest) (string, error) {
	event, err := s.getEvent(ctx, req.EventID)
	if err != nil {
		return "", err
	}

	pass := passCode(req.EventID)

	greeting := "Hello"
	if req.Name != "" {
		greeting += " " + req.Name
	}
	subject := fmt.Sprintf("Your Event Pass for %s", event.Title)
	text := fmt.Sprintf("%s,\n\nThank you for applying to participate in the event: %s.\n\n"+
		"Event Details:\n- Date: %s\n- Venue: %s\n- Organizer: %s\n\n"+
		"Reason for interest: %s\n\nYour Event Pass: %s\n\n"+
		"Please show this pass at the event entrance.\n\nBest regards,\nCampus Event Automation Team",
		greeting, event.Title, event.Date, event.Venue,
		orNA(event.Organizer), orNA(req.Reason), pass)

	if s.mail == nil {
		logrus.Warn("mailer not configured, skipping participant pass email")
		return pass, nil
	}
	if err := s.mail.Send(req.Email, subject, text, ""); err != nil {
		return "", fmt.Errorf("failed to send pass email: %w", err)
	}
	return pass, nil
}

func (s *eventService) getEvent(ctx context.Context, id string) (*entity.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, entity.ErrInvalidEventID
	}
	event, err := s.eventRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// passCode derives an entrance pass from the tail of the event id
func passCode(eventID string) string {
	tail := eventID
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return "PASS-" + strings.ToUpper(tail)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

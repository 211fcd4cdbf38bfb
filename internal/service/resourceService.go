package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	repository "github.com/actionhub-org/HappyFox-practice/internal/database/mongo"
	"github.com/actionhub-org/HappyFox-practice/internal/entity"
	"github.com/actionhub-org/HappyFox-practice/pkg/aiclient"
	"github.com/actionhub-org/HappyFox-practice/pkg/webhook"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConfirmRequest carries an organizer's final resource decision
type ConfirmRequest struct {
	EventID     string             `json:"event_id" binding:"required"`
	Edited      entity.ResourceMap `json:"edited_resources" binding:"required"`
	ConfirmedBy string             `json:"confirmed_by" binding:"required"`
}

// NotificationStatus is one per-channel outcome of the confirmation
// fan-out. Resource is "webhook", "organizer" or a resource key.
type NotificationStatus struct {
	Resource string `json:"resource"`
	To       string `json:"to,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

const (
	notifyStatusSuccess = "success"
	notifyStatusError   = "error"
)

// Recommender produces a resource mapping for an event
type Recommender interface {
	RecommendResources(ctx context.Context, req *aiclient.RecommendationRequest) (map[string]interface{}, error)
}

// MailSender delivers a single notification email
type MailSender interface {
	Send(to, subject, text, html string) error
}

// CardPoster posts a notification card to the ops channel
type CardPoster interface {
	SendCard(ctx context.Context, card webhook.MessageCard) error
}

// DefaultResourceContacts maps resource keys to their stakeholder teams.
// Resources outside this table get no stakeholder email.
func DefaultResourceContacts() map[string]string {
	return map[string]string{
		"camera":           "deebakbalaji18@gmail.com",
		"mic":              "mic-team@university.edu",
		"projector":        "av-team@university.edu",
		"cleaning_staff":   "cleaning@university.edu",
		"electric_support": "electric@university.edu",
		"wifi_support":     "it@university.edu",
	}
}

const historyLimit = 5

type resourceService struct {
	resourceRepo repository.ResourceRepository
	eventRepo    repository.EventRepository
	recommender  Recommender
	mail         MailSender
	hook         CardPoster
	contacts     map[string]string
}

// NewResourceService creates a new instance of ResourceService. mail and
// hook may be nil; the matching notification channels are then skipped.
func NewResourceService(
	resourceRepo repository.ResourceRepository,
	eventRepo repository.EventRepository,
	recommender Recommender,
	mail MailSender,
	hook CardPoster,
	contacts map[string]string,
) ResourceService {
	if contacts == nil {
		contacts = DefaultResourceContacts()
	}
	return &resourceService{
		resourceRepo: resourceRepo,
		eventRepo:    eventRepo,
		recommender:  recommender,
		mail:         mail,
		hook:         hook,
		contacts:     contacts,
	}
}

// Recommend gathers up to five similar past events, asks the recommender
// for a resource mapping and stores it as a pending allocation keyed on
// the event id. Called when an approval chain completes.
func (s *resourceService) Recommend(ctx context.Context, eventID string) (*entity.ResourceAllocation, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, entity.ErrInvalidEventID
	}

	event, err := s.eventRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if s.recommender == nil {
		return nil, fmt.Errorf("recommender is not configured")
	}

	pastEvents, err := s.gatherHistory(ctx, event)
	if err != nil {
		logrus.WithError(err).Warn("failed to gather event history, recommending without it")
		pastEvents = nil
	}

	recommended, err := s.recommender.RecommendResources(ctx, &aiclient.RecommendationRequest{
		EventType:          event.EventType,
		Venue:              event.Venue,
		DurationDays:       event.DurationDays,
		ExpectedAttendance: event.ExpectedAttendance,
		PastEvents:         pastEvents,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get resource recommendation: %w", err)
	}

	allocation, err := s.resourceRepo.UpsertRecommendation(ctx, oid, recommended, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to store recommendation: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id":  eventID,
		"resources": len(recommended),
	}).Info("resource recommendation stored")

	return allocation, nil
}

// gatherHistory joins past approved events of the same category and venue
// with their stored allocations to build the few-shot context.
func (s *resourceService) gatherHistory(ctx context.Context, event *entity.Event) ([]aiclient.PastEvent, error) {
	history, err := s.eventRepo.GetHistory(ctx, event.EventType, event.Venue, historyLimit)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(history))
	for _, e := range history {
		ids = append(ids, e.ID)
	}
	allocations, err := s.resourceRepo.GetByEventIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byEvent := make(map[primitive.ObjectID]entity.ResourceMap, len(allocations))
	for _, a := range allocations {
		byEvent[a.EventID] = a.EffectiveResources()
	}

	past := make([]aiclient.PastEvent, 0, len(history))
	for _, e := range history {
		resources := byEvent[e.ID]
		if resources == nil {
			resources = entity.ResourceMap{}
		}
		past = append(past, aiclient.PastEvent{
			EventType: e.EventType,
			Venue:     e.Venue,
			Resources: resources,
		})
	}
	return past, nil
}

// ConfirmAllocation persists the organizer's final resource set and then
// fans out notifications. The confirm is the primary mutation: channel
// failures are reported in the returned statuses, never as an error.
func (s *resourceService) ConfirmAllocation(ctx context.Context, req *ConfirmRequest) (*entity.ResourceAllocation, []NotificationStatus, error) {
	if req.EventID == "" || len(req.Edited) == 0 || req.ConfirmedBy == "" {
		return nil, nil, entity.ErrInvalidInput
	}
	oid, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		return nil, nil, entity.ErrInvalidEventID
	}

	allocation, err := s.resourceRepo.Confirm(ctx, oid, req.Edited, req.ConfirmedBy, time.Now())
	if err != nil {
		return nil, nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, oid)
	if err != nil {
		logrus.WithError(err).WithField("event_id", req.EventID).
			Warn("confirmed allocation but event lookup failed, skipping notifications")
		return allocation, []NotificationStatus{}, nil
	}

	statuses := s.notifyConfirmed(ctx, event, req.Edited)
	return allocation, statuses, nil
}

func (s *resourceService) notifyConfirmed(ctx context.Context, event *entity.Event, edited entity.ResourceMap) []NotificationStatus {
	statuses := make([]NotificationStatus, 0, len(edited)+2)
	keys := sortedKeys(edited)

	if s.hook != nil {
		st := NotificationStatus{Resource: "webhook", Status: notifyStatusSuccess}
		if err := s.hook.SendCard(ctx, confirmationCard(event, edited, keys)); err != nil {
			logrus.WithError(err).Error("failed to post confirmation card")
			st.Status = notifyStatusError
			st.Error = err.Error()
		}
		statuses = append(statuses, st)
	}

	if s.mail == nil {
		return statuses
	}

	if event.Organizer != "" {
		statuses = append(statuses, s.mailOrganizer(event, edited, keys))
	}
	for _, key := range keys {
		to, ok := s.contacts[key]
		if !ok {
			continue
		}
		statuses = append(statuses, s.mailStakeholder(event, key, edited[key], to))
	}

	return statuses
}

func (s *resourceService) mailOrganizer(event *entity.Event, edited entity.ResourceMap, keys []string) NotificationStatus {
	subject := fmt.Sprintf("Resource Allocation Confirmed for Event: %s", event.Title)

	var text, items strings.Builder
	fmt.Fprintf(&text, "Resources for %s (%s):\n", event.Title, event.Date)
	for _, k := range keys {
		fmt.Fprintf(&text, "%s: %v\n", k, edited[k])
		fmt.Fprintf(&items, "<li><b>%s:</b> %v</li>", strings.ReplaceAll(k, "_", " "), edited[k])
	}
	html := fmt.Sprintf("<h2>Resource Allocation Confirmed</h2><p><b>Event:</b> %s (%s)</p><ul>%s</ul>",
		event.Title, event.Date, items.String())

	st := NotificationStatus{Resource: "organizer", To: event.Organizer, Status: notifyStatusSuccess}
	if err := s.mail.Send(event.Organizer, subject, text.String(), html); err != nil {
		logrus.WithError(err).WithField("to", event.Organizer).Error("failed to send organizer confirmation")
		st.Status = notifyStatusError
		st.Error = err.Error()
	}
	return st
}

func (s *resourceService) mailStakeholder(event *entity.Event, resource string, value interface{}, to string) NotificationStatus {
	label := resourceLabel(resource)
	subject := fmt.Sprintf("Resource Request: %s for Event %q (%s)", label, event.Title, event.Date)
	requested := formatRequested(value, label)

	text := fmt.Sprintf("Dear %s Team,\n\nThe following event requires your support:\n\n"+
		"Event: %s\nDate: %s\nVenue: %s\nRequested: %s\n\n"+
		"Please reply to this email with the quantity you can provide.\n\nThank you,\nEventBot\n",
		label, event.Title, event.Date, event.Venue, requested)
	html := fmt.Sprintf("<p>Dear <b>%s Team</b>,</p><p>The following event requires your support:</p>"+
		"<ul><li><b>Event:</b> %s</li><li><b>Date:</b> %s</li><li><b>Venue:</b> %s</li><li><b>Requested:</b> %s</li></ul>"+
		"<p>Thank you,<br/>EventBot</p>",
		label, event.Title, event.Date, event.Venue, requested)

	st := NotificationStatus{Resource: resource, To: to, Status: notifyStatusSuccess}
	if err := s.mail.Send(to, subject, text, html); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"to": to, "resource": resource}).
			Error("failed to send resource request")
		st.Status = notifyStatusError
		st.Error = err.Error()
	}
	return st
}

func (s *resourceService) AllocationsForOrganizer(ctx context.Context, email string) ([]*entity.ResourceAllocation, error) {
	events, err := s.eventRepo.GetByOrganizer(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get organizer events: %w", err)
	}
	if len(events) == 0 {
		return []*entity.ResourceAllocation{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	allocations, err := s.resourceRepo.GetByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}
	return allocations, nil
}

func confirmationCard(event *entity.Event, edited entity.ResourceMap, keys []string) webhook.MessageCard {
	facts := []webhook.Fact{
		{Name: "Event", Value: event.Title},
		{Name: "Venue", Value: event.Venue},
		{Name: "Date", Value: event.Date},
	}
	for _, k := range keys {
		facts = append(facts, webhook.Fact{Name: resourceLabel(k), Value: fmt.Sprintf("%v", edited[k])})
	}
	return webhook.NewCard("Resource Request for Event", "Resource Allocation Needed", facts)
}

// resourceLabel humanizes a resource key: "cleaning_staff" -> "Cleaning Staff"
func resourceLabel(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatRequested(value interface{}, label string) string {
	if b, ok := value.(bool); ok {
		if b {
			return "Yes"
		}
		return "No"
	}
	return fmt.Sprintf("%v %s", value, label)
}

func sortedKeys(m entity.ResourceMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package service

import (
	"context"
	"fmt"

	repository "github.com/actionhub-org/HappyFox-practice/internal/database/mongo"
	"github.com/actionhub-org/HappyFox-practice/internal/entity"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventReport joins an event with its resource allocation and venue.
// Resource and Venue are null when the join has nothing to resolve.
type EventReport struct {
	Event    *entity.Event              `json:"event"`
	Resource *entity.ResourceAllocation `json:"resource"`
	Venue    *entity.Venue              `json:"venue"`
}

type reportService struct {
	eventRepo    repository.EventRepository
	resourceRepo repository.ResourceRepository
	venueRepo    repository.VenueRepository
}

// NewReportService creates a new instance of ReportService
func NewReportService(
	eventRepo repository.EventRepository,
	resourceRepo repository.ResourceRepository,
	venueRepo repository.VenueRepository,
) ReportService {
	return &reportService{
		eventRepo:    eventRepo,
		resourceRepo: resourceRepo,
		venueRepo:    venueRepo,
	}
}

func (s *reportService) Report(ctx context.Context, eventID string) (*EventReport, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, entity.ErrInvalidEventID
	}

	event, err := s.eventRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	report := &EventReport{Event: event}

	resource, err := s.resourceRepo.GetByEventID(ctx, oid)
	switch err {
	case nil:
		report.Resource = resource
	case entity.ErrAllocationNotFound:
	default:
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}

	if event.Venue != "" {
		venue, err := s.venueRepo.GetByName(ctx, event.Venue)
		switch err {
		case nil:
			report.Venue = venue
		case entity.ErrVenueNotFound:
		default:
			return nil, fmt.Errorf("failed to get venue: %w", err)
		}
	}

	return report, nil
}

// FinalReports builds one report per confirmed allocation. Allocations
// whose event can no longer be resolved are skipped.
func (s *reportService) FinalReports(ctx context.Context) ([]*EventReport, error) {
	confirmed, err := s.resourceRepo.GetConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get confirmed allocations: %w", err)
	}
	if len(confirmed) == 0 {
		return []*EventReport{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(confirmed))
	for _, r := range confirmed {
		ids = append(ids, r.EventID)
	}
	events, err := s.eventRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	byID := make(map[primitive.ObjectID]*entity.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	venues, err := s.venueRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get venues: %w", err)
	}
	byName := make(map[string]*entity.Venue, len(venues))
	for _, v := range venues {
		byName[v.Name] = v
	}

	reports := make([]*EventReport, 0, len(confirmed))
	for _, resource := range confirmed {
		event, ok := byID[resource.EventID]
		if !ok {
			logrus.WithField("event_id", resource.EventID.Hex()).
				Warn("confirmed allocation without event, skipping report")
			continue
		}
		reports = append(reports, &EventReport{
			Event:    event,
			Resource: resource,
			Venue:    byName[event.Venue],
		})
	}
	return reports, nil
}

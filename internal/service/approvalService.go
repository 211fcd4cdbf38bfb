package service

import (
	"context"
	"strings"
	"time"

	repository "github.com/actionhub-org/HappyFox-practice/internal/database/mongo"
	"github.com/actionhub-org/HappyFox-practice/internal/entity"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskPublisher publishes background tasks to the queue
type TaskPublisher interface {
	Publish(ctx context.Context, task *Task) error
}

// Task is the queue-agnostic task shape the services emit
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	ExecuteAt  time.Time              `json:"execute_at"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
}

const TaskTypeRecommendResources = "recommend_resources"

type approvalService struct {
	eventRepo repository.EventRepository
	resources ResourceService
	queue     TaskPublisher
}

// NewApprovalService creates a new instance of ApprovalService. When queue
// is nil the recommendation step runs inline, best effort.
func NewApprovalService(
	eventRepo repository.EventRepository,
	resources ResourceService,
	queue TaskPublisher,
) ApprovalService {
	return &approvalService{
		eventRepo: eventRepo,
		resources: resources,
		queue:     queue,
	}
}

// RecordDecision applies one approver's decision to the event's approval
// chain. The chain write is the primary mutation; everything that follows
// from a completed chain is a side effect that never rolls it back.
func (s *approvalService) RecordDecision(ctx context.Context, eventID, approverEmail, decision string) (*entity.Event, error) {
	status := entity.ApprovalStatus(decision)
	if status != entity.ApprovalStatusApproved && status != entity.ApprovalStatusRejected {
		return nil, entity.ErrInvalidDecision
	}
	if approverEmail == "" {
		return nil, entity.ErrInvalidInput
	}

	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, entity.ErrInvalidEventID
	}

	event, err := s.eventRepo.UpdateApproverStatus(ctx, oid, strings.ToLower(approverEmail), status, time.Now())
	if err != nil {
		return nil, err
	}

	if status == entity.ApprovalStatusApproved && event.FullyApproved() {
		s.triggerRecommendation(ctx, event)
	}

	return event, nil
}

// triggerRecommendation hands the completed event to the recommendation
// pipeline: queued with retries when a queue is wired, inline otherwise.
// Failures are logged and swallowed.
func (s *approvalService) triggerRecommendation(ctx context.Context, event *entity.Event) {
	log := logrus.WithField("event_id", event.ID.Hex())

	if s.queue != nil {
		task := &Task{
			Type: TaskTypeRecommendResources,
			Data: map[string]interface{}{
				"event_id": event.ID.Hex(),
			},
		}
		if err := s.queue.Publish(ctx, task); err != nil {
			log.WithError(err).Error("failed to enqueue resource recommendation")
		} else {
			log.Info("resource recommendation task enqueued")
		}
		return
	}

	if s.resources == nil {
		log.Warn("no resource service wired, skipping recommendation")
		return
	}
	if _, err := s.resources.Recommend(ctx, event.ID.Hex()); err != nil {
		log.WithError(err).Error("inline resource recommendation failed")
	}
}

package queue

import (
	"context"
	"fmt"
	"log"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
)

// ResourceRecommender runs the recommendation pipeline for one event
type ResourceRecommender interface {
	Recommend(ctx context.Context, eventID string) (*entity.ResourceAllocation, error)
}

// TaskHandler dispatches queue tasks to the recommendation pipeline
type TaskHandler struct {
	resources ResourceRecommender
}

func NewTaskHandler(resources ResourceRecommender) *TaskHandler {
	return &TaskHandler{resources: resources}
}

// HandleTask routes one task by type. Returned errors feed the retry
// manager; "not found" and "invalid" errors are terminal by its rules.
func (h *TaskHandler) HandleTask(task *Task) error {
	log.Printf("Handling task %s of type %s (attempt %d/%d)",
		task.ID, task.Type, task.Attempts, task.MaxRetries)

	switch task.Type {
	case TaskTypeRecommendResources:
		return h.handleRecommendResources(task)
	default:
		return fmt.Errorf("unknown task type: %s", task.Type)
	}
}

func (h *TaskHandler) handleRecommendResources(task *Task) error {
	ctx := context.Background()

	eventID := task.GetString("event_id")
	if eventID == "" {
		return fmt.Errorf("invalid event_id in task data")
	}

	allocation, err := h.resources.Recommend(ctx, eventID)
	if err != nil {
		return fmt.Errorf("recommendation for event %s failed: %w", eventID, err)
	}

	log.Printf("Recommendation stored for event %s (%d resources)",
		eventID, len(allocation.Recommended))
	return nil
}

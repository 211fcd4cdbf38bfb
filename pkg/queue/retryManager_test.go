package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldRetry_TransientError(t *testing.T) {
	rm := NewRetryManager(3, time.Second)
	task := &Task{Attempts: 1, MaxRetries: 3}

	retry, delay := rm.ShouldRetry(task, errors.New("connection refused"))

	assert.True(t, retry)
	assert.Greater(t, delay, time.Duration(0))
}

func TestShouldRetry_AttemptsExhausted(t *testing.T) {
	rm := NewRetryManager(3, time.Second)
	task := &Task{Attempts: 3, MaxRetries: 3}

	retry, delay := rm.ShouldRetry(task, errors.New("connection refused"))

	assert.False(t, retry)
	assert.Zero(t, delay)
}

func TestShouldRetry_NonRetryableErrors(t *testing.T) {
	rm := NewRetryManager(3, time.Second)
	task := &Task{Attempts: 0, MaxRetries: 3}

	for _, msg := range []string{
		"invalid event id",
		"event not found",
		"permission denied for queue",
		"validation failed on payload",
		"Resource Allocation NOT FOUND",
	} {
		retry, _ := rm.ShouldRetry(task, errors.New(msg))
		assert.False(t, retry, "expected %q to be terminal", msg)
	}
}

func TestShouldRetry_NilError(t *testing.T) {
	rm := NewRetryManager(3, time.Second)
	task := &Task{Attempts: 0, MaxRetries: 3}

	retry, _ := rm.ShouldRetry(task, nil)

	assert.False(t, retry)
}

func TestCalculateBackoff_GrowsAndCaps(t *testing.T) {
	base := time.Second
	rm := NewRetryManager(10, base)

	assert.Equal(t, base, rm.calculateBackoff(0))

	for attempt := 1; attempt <= 10; attempt++ {
		raw := base * time.Duration(1<<(attempt-1))
		floor := raw / 2
		if floor > base*16 {
			floor = base * 16
		}
		for i := 0; i < 20; i++ {
			delay := rm.calculateBackoff(attempt)
			assert.GreaterOrEqual(t, delay, floor)
			assert.LessOrEqual(t, delay, base*16)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	task := &Task{ID: "t-1", Type: TaskTypeRecommendResources}
	assert.NoError(t, task.Validate())
	assert.NotNil(t, task.Data)

	assert.Error(t, (&Task{Type: TaskTypeRecommendResources}).Validate())
	assert.Error(t, (&Task{ID: "t-1"}).Validate())
}

func TestTaskDataAccessors(t *testing.T) {
	task := &Task{Data: map[string]interface{}{
		"event_id": "68ad3f2e9c1b4a0012345678",
		"count":    float64(7),
		"when":     "2026-09-15T09:00:00Z",
	}}

	assert.Equal(t, "68ad3f2e9c1b4a0012345678", task.GetString("event_id"))
	assert.Equal(t, "", task.GetString("count"))
	assert.Equal(t, 7, task.GetInt("count"))
	assert.Zero(t, task.GetInt("event_id"))
	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), task.GetTime("when"))
	assert.True(t, task.GetTime("missing").IsZero())
}

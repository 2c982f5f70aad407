package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

func TestComputeTaskStats(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tasks := []models.Task{
		{Status: models.TaskStatusPending, Deadline: past},
		{Status: models.TaskStatusInProgress, Deadline: future},
		{Status: models.TaskStatusCompleted, Deadline: past},
		{Status: models.TaskStatusCompleted, Deadline: future},
		{Status: models.TaskStatusBlocked, Deadline: past},
	}

	stats := ComputeTaskStats(tasks, now)

	assert.Equal(t, TaskStats{
		Total:      5,
		Pending:    1,
		InProgress: 1,
		Completed:  2,
		Blocked:    1,
		Overdue:    2,
	}, stats)
	assert.InDelta(t, 0.4, stats.CompletionRate(), 1e-9)
}

func TestComputeTaskStats_Empty(t *testing.T) {
	stats := ComputeTaskStats(nil, time.Now())

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.CompletionRate())
}

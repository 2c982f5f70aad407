package services

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TaskStats counts tasks per status. A task is overdue when its deadline
// has passed and it is not Concluída.
type TaskStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Blocked    int
	Overdue    int
}

// CompletionRate is the completed share of all tasks, 0 when there are none.
func (s TaskStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// ComputeTaskStats aggregates tasks as of now.
func ComputeTaskStats(tasks []models.Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusPending:
			stats.Pending++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusCompleted:
			stats.Completed++
		case models.TaskStatusBlocked:
			stats.Blocked++
		}

		if task.Status != models.TaskStatusCompleted && task.Deadline.Before(now) {
			stats.Overdue++
		}
	}
	return stats
}

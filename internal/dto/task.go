package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	Description  *string           `json:"description"`
	CreatedAt    time.Time         `json:"createdAt"`
	Deadline     time.Time         `json:"deadline"`
	Status       models.TaskStatus `json:"status"`
	CompletedAt  *time.Time        `json:"completedAt"`
	ProjectID    uint64            `json:"projectId"`
	ProjectName  string            `json:"projectName"`
	AssigneeID   uint64            `json:"assigneeId"`
	AssigneeName string            `json:"assigneeName"`
}

// TaskStatsDTO summarizes the tasks assigned to a programmer
type TaskStatsDTO struct {
	TotalTasks      int     `json:"totalTasks"`
	PendingTasks    int     `json:"pendingTasks"`
	InProgressTasks int     `json:"inProgressTasks"`
	CompletedTasks  int     `json:"completedTasks"`
	BlockedTasks    int     `json:"blockedTasks"`
	OverdueTasks    int     `json:"overdueTasks"`
	CompletionRate  float64 `json:"completionRate"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO. Project and Assignee names
// are only filled when the relations were preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:           task.ID,
		Name:         task.Name,
		Description:  task.Description,
		CreatedAt:    task.CreatedAt,
		Deadline:     task.Deadline,
		Status:       task.Status,
		CompletedAt:  task.CompletedAt,
		ProjectID:    task.ProjectID,
		ProjectName:  task.Project.Name,
		AssigneeID:   task.AssigneeID,
		AssigneeName: task.Assignee.FullName,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

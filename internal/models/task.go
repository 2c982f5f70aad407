package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pendente"
	TaskStatusInProgress TaskStatus = "Em Progresso"
	TaskStatusCompleted  TaskStatus = "Concluída"
	TaskStatusBlocked    TaskStatus = "Bloqueada"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusBlocked,
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Deadline    time.Time  `gorm:"not null" json:"deadline"`
	Status      TaskStatus `gorm:"type:varchar(50);not null" json:"status"`
	CompletedAt *time.Time `json:"completedAt"`
	ProjectID   uint64     `gorm:"not null;index" json:"projectId"`
	AssigneeID  uint64     `gorm:"not null;index" json:"assigneeId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Project     Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee    User        `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	TimeEntries []TimeEntry `gorm:"foreignKey:TaskID" json:"timeEntries,omitempty"`
}

package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TimeEntryDTO represents a time entry in API responses
type TimeEntryDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"taskId"`
	TaskName  string    `json:"taskName"`
	UserID    uint64    `json:"userId"`
	UserName  string    `json:"userName"`
	Date      time.Time `json:"date"`
	Hours     float64   `json:"hours"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeEntrySummaryDTO aggregates the time logged on a task
type TimeEntrySummaryDTO struct {
	TaskID         uint64     `json:"taskId"`
	TotalHours     float64    `json:"totalHours"`
	EntriesCount   int64      `json:"entriesCount"`
	LastEntryDate  *time.Time `json:"lastEntryDate"`
	LastEntryHours *float64   `json:"lastEntryHours"`
}

// ToTimeEntryDTO converts a TimeEntry with its preloaded task and user
func ToTimeEntryDTO(entry models.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:        entry.ID,
		TaskID:    entry.TaskID,
		TaskName:  entry.Task.Name,
		UserID:    entry.UserID,
		UserName:  entry.User.FullName,
		Date:      entry.Date,
		Hours:     entry.Hours,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
	}
}

// ToTimeEntryDTOs converts a slice of entries
func ToTimeEntryDTOs(entries []models.TimeEntry) []TimeEntryDTO {
	items := make([]TimeEntryDTO, len(entries))
	for i, entry := range entries {
		items[i] = ToTimeEntryDTO(entry)
	}
	return items
}

package models

import "time"

// TimeEntry is an append-only record of hours a programmer spent on a task.
type TimeEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"taskId"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	Date      time.Time `gorm:"not null" json:"date"`
	Hours     float64   `gorm:"type:decimal(5,2);not null" json:"hours"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

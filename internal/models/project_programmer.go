package models

import "time"

// ProjectProgrammer allocates a programmer to a project.
type ProjectProgrammer struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	ProjectID      uint64    `gorm:"not null;uniqueIndex:idx_project_programmer" json:"projectId"`
	ProgrammerID   uint64    `gorm:"not null;uniqueIndex:idx_project_programmer;index" json:"programmerId"`
	AllocationDate time.Time `gorm:"not null" json:"allocationDate"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Programmer User    `gorm:"foreignKey:ProgrammerID" json:"programmer,omitempty"`
}

package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Budget      *float64  `gorm:"type:decimal(18,2)" json:"budget"`
	ManagerID   uint64    `gorm:"not null;index" json:"managerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Manager     User                `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Tasks       []Task              `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Programmers []ProjectProgrammer `gorm:"foreignKey:ProjectID" json:"programmers,omitempty"`
}

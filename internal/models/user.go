package models

import (
	"time"
)

type UserType int

const (
	UserTypeProjectManager UserType = 1
	UserTypeProgrammer     UserType = 2
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	return t == UserTypeProjectManager || t == UserTypeProgrammer
}

// Description returns the human readable role name.
func (t UserType) Description() string {
	switch t {
	case UserTypeProjectManager:
		return "Project Manager"
	case UserTypeProgrammer:
		return "Programmer"
	default:
		return "Unknown"
	}
}

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	FullName     string     `gorm:"type:varchar(100);not null" json:"fullName"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	UserType     UserType   `gorm:"not null;index" json:"userType"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`

	// Relations
	ManagedProjects []Project `gorm:"foreignKey:ManagerID" json:"-"`
	AssignedTasks   []Task    `gorm:"foreignKey:AssigneeID" json:"-"`
}

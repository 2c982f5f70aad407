package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Budget      *float64  `json:"budget"`
	CreatedAt   time.Time `json:"createdAt"`
	ManagerID   uint64    `json:"managerId"`
	ManagerName string    `json:"managerName,omitempty"`
}

// ProjectProgrammerDTO represents a programmer allocated to a project
type ProjectProgrammerDTO struct {
	ID             uint64    `json:"id"`
	ProgrammerID   uint64    `json:"programmerId"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	AllocationDate time.Time `json:"allocationDate"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Budget:      project.Budget,
		CreatedAt:   project.CreatedAt,
		ManagerID:   project.ManagerID,
	}

	// Include manager name if preloaded
	if project.Manager.ID != 0 {
		dto.ManagerName = project.Manager.FullName
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}

// ToProjectProgrammerDTO converts an allocation with its preloaded programmer
func ToProjectProgrammerDTO(allocation models.ProjectProgrammer) ProjectProgrammerDTO {
	return ProjectProgrammerDTO{
		ID:             allocation.ID,
		ProgrammerID:   allocation.ProgrammerID,
		FullName:       allocation.Programmer.FullName,
		Email:          allocation.Programmer.Email,
		AllocationDate: allocation.AllocationDate,
	}
}

// ToProjectProgrammerDTOs converts a slice of allocations
func ToProjectProgrammerDTOs(allocations []models.ProjectProgrammer) []ProjectProgrammerDTO {
	items := make([]ProjectProgrammerDTO, len(allocations))
	for i, allocation := range allocations {
		items[i] = ToProjectProgrammerDTO(allocation)
	}
	return items
}

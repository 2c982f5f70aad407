package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateLastLogin stamps the user's last successful login
	UpdateLastLogin(ctx context.Context, id uint64, at time.Time) error

	// ListByType lists every user of the given type ordered by name
	ListByType(ctx context.Context, userType models.UserType) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// Update updates a project's own columns
	Update(ctx context.Context, project *models.Project) error

	// Delete deletes a project with its tasks, their time entries and its allocations
	Delete(ctx context.Context, id uint64) error

	// ListByManager lists the projects a manager owns
	ListByManager(ctx context.Context, managerID uint64) ([]models.Project, error)

	// ListByAssignee lists the projects holding at least one task assigned to the user
	ListByAssignee(ctx context.Context, userID uint64) ([]models.Project, error)

	// HasTaskAssignedTo reports whether the project holds a task assigned to the user
	HasTaskAssignedTo(ctx context.Context, projectID, userID uint64) (bool, error)

	// ListAllocations lists the programmers allocated to a project
	ListAllocations(ctx context.Context, projectID uint64) ([]models.ProjectProgrammer, error)

	// ReplaceAllocations replaces every allocation of a project in one transaction
	ReplaceAllocations(ctx context.Context, projectID uint64, programmerIDs []uint64, allocatedAt time.Time) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update updates a task's own columns
	Update(ctx context.Context, task *models.Task) error

	// UpdateStatus writes only the status and completion timestamp
	UpdateStatus(ctx context.Context, task *models.Task) error

	// Delete deletes a task and its time entries
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID  *uint64
	AssigneeID *uint64
	ManagerID  *uint64
	Status     *models.TaskStatus
}

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	// Create creates a new time entry
	Create(ctx context.Context, entry *models.TimeEntry) error

	// FindByID finds a time entry with its task and user
	FindByID(ctx context.Context, id uint64) (*models.TimeEntry, error)

	// ListByTask lists a task's entries, newest day first
	ListByTask(ctx context.Context, taskID uint64) ([]models.TimeEntry, error)

	// Summarize aggregates a task's entries
	Summarize(ctx context.Context, taskID uint64) (*TimeEntrySummary, error)
}

// TimeEntrySummary aggregates the time logged on a task
type TimeEntrySummary struct {
	TotalHours     float64
	EntriesCount   int64
	LastEntryDate  *time.Time
	LastEntryHours *float64
}

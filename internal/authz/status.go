package authz

import (
	"errors"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

var (
	ErrForbidden               = errors.New("access denied")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidUserType         = errors.New("invalid user type")
	ErrManagerStatusNotAllowed = errors.New("project managers can only set tasks to Bloqueada or Pendente")
	ErrProgrammerCannotBlock   = errors.New("programmers cannot set tasks to Bloqueada")
)

// StatusChange is the outcome of an accepted status request.
type StatusChange struct {
	Status      models.TaskStatus
	CompletedAt *time.Time
}

// Apply writes the change onto task.
func (c StatusChange) Apply(task *models.Task) {
	task.Status = c.Status
	task.CompletedAt = c.CompletedAt
}

// ResolveStatusChange decides whether actor may move task to the requested
// status and returns the resulting status and completion timestamp.
//
// Managers may only request Bloqueada or Pendente on tasks of projects they
// own. Programmers may request Pendente, Em Progresso or Concluída on tasks
// assigned to them. Entering Concluída stamps CompletedAt with now in UTC;
// any other target leaves it nil.
func ResolveStatusChange(actor Actor, task TaskRef, requested models.TaskStatus, now time.Time) (StatusChange, error) {
	switch {
	case actor.IsProjectManager():
		if requested != models.TaskStatusBlocked && requested != models.TaskStatusPending {
			if !requested.Valid() {
				return StatusChange{}, ErrInvalidStatus
			}
			return StatusChange{}, ErrManagerStatusNotAllowed
		}
		if actor.ID != task.ManagerID {
			return StatusChange{}, ErrForbidden
		}
	case actor.IsProgrammer():
		if actor.ID != task.AssigneeID {
			return StatusChange{}, ErrForbidden
		}
		if requested == models.TaskStatusBlocked {
			return StatusChange{}, ErrProgrammerCannotBlock
		}
		if !requested.Valid() {
			return StatusChange{}, ErrInvalidStatus
		}
	default:
		return StatusChange{}, ErrInvalidUserType
	}

	return newStatusChange(requested, now), nil
}

// InitialStatus validates the status a new task is created with. An empty
// status defaults to Pendente.
func InitialStatus(requested models.TaskStatus, now time.Time) (StatusChange, error) {
	if requested == "" {
		requested = models.TaskStatusPending
	}
	if !requested.Valid() {
		return StatusChange{}, ErrInvalidStatus
	}
	return newStatusChange(requested, now), nil
}

func newStatusChange(status models.TaskStatus, now time.Time) StatusChange {
	change := StatusChange{Status: status}
	if status == models.TaskStatusCompleted {
		completedAt := now.UTC()
		change.CompletedAt = &completedAt
	}
	return change
}

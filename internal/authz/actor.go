package authz

import "github.com/yukikurage/project-tracker-api/internal/models"

// Actor is the authenticated caller of a request.
type Actor struct {
	ID   uint64
	Type models.UserType
}

func (a Actor) IsProjectManager() bool {
	return a.Type == models.UserTypeProjectManager
}

func (a Actor) IsProgrammer() bool {
	return a.Type == models.UserTypeProgrammer
}

// TaskRef carries the two ownership facts every task rule depends on.
type TaskRef struct {
	ManagerID  uint64
	AssigneeID uint64
}

// TaskRefOf builds a TaskRef from a task whose Project relation is loaded.
func TaskRefOf(task *models.Task) TaskRef {
	return TaskRef{
		ManagerID:  task.Project.ManagerID,
		AssigneeID: task.AssigneeID,
	}
}

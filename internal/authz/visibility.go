package authz

// CanManageProject reports whether the actor is the manager that owns the project.
func CanManageProject(actor Actor, managerID uint64) bool {
	return actor.IsProjectManager() && actor.ID == managerID
}

// CanViewProject reports whether the actor may read a project. Programmers
// see a project as soon as one of its tasks is assigned to them.
func CanViewProject(actor Actor, managerID uint64, hasAssignedTask bool) bool {
	switch {
	case actor.IsProjectManager():
		return actor.ID == managerID
	case actor.IsProgrammer():
		return hasAssignedTask
	default:
		return false
	}
}

// CanViewTask reports whether the actor may read a task and its time entries.
func CanViewTask(actor Actor, task TaskRef) bool {
	switch {
	case actor.IsProjectManager():
		return actor.ID == task.ManagerID
	case actor.IsProgrammer():
		return actor.ID == task.AssigneeID
	default:
		return false
	}
}

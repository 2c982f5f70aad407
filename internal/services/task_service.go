package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskAccessDenied    = errors.New("you do not have access to this task")
	ErrTaskNameInvalid     = errors.New("task name must be between 2 and 200 characters")
	ErrDeadlineRequired    = errors.New("deadline is required")
	ErrInvalidAssignee     = errors.New("invalid assignee ID. Must be a programmer")
	ErrStatsProgrammerOnly = errors.New("only programmers have task statistics")
)

const maxTaskNameLength = 200

// taskPreloads are the relations every task response needs.
var taskPreloads = []string{"Project", "Assignee"}

// TaskService handles task business logic
type TaskService struct {
	log         zerolog.Logger
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(
	log zerolog.Logger,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
) *TaskService {
	return &TaskService{
		log:         log,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description *string
	Deadline    time.Time
	Status      models.TaskStatus
	ProjectID   uint64
	AssigneeID  uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are
// left unchanged, except Description which is always replaced.
type UpdateTaskInput struct {
	Name        *string
	Description *string
	Deadline    *time.Time
	Status      *models.TaskStatus
	AssigneeID  *uint64
}

// GetTask returns a task the actor may view
func (s *TaskService) GetTask(ctx context.Context, actor authz.Actor, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !authz.CanViewTask(actor, authz.TaskRefOf(task)) {
		return nil, ErrTaskAccessDenied
	}

	return task, nil
}

// CreateTask creates a task in a project the actor owns
func (s *TaskService) CreateTask(ctx context.Context, actor authz.Actor, input CreateTaskInput) (*models.Task, error) {
	if !actor.IsProjectManager() {
		return nil, ErrNotProjectManager
	}

	name, err := validateTaskName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Deadline.IsZero() {
		return nil, ErrDeadlineRequired
	}

	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !authz.CanManageProject(actor, project.ManagerID) {
		return nil, ErrNotProjectOwner
	}

	if err := s.ensureProgrammer(ctx, input.AssigneeID); err != nil {
		return nil, err
	}

	status, err := authz.InitialStatus(input.Status, s.now())
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        name,
		Description: input.Description,
		Deadline:    input.Deadline.UTC(),
		ProjectID:   project.ID,
		AssigneeID:  input.AssigneeID,
	}
	status.Apply(task)

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log.Info().
		Uint64("task_id", task.ID).
		Uint64("project_id", task.ProjectID).
		Uint64("assignee_id", task.AssigneeID).
		Msg("task created")
	return s.taskRepo.FindByID(ctx, task.ID, taskPreloads...)
}

// UpdateTask updates a task of a project the actor owns. A status that
// differs from the current one goes through the same transition policy as
// UpdateTaskStatus.
func (s *TaskService) UpdateTask(ctx context.Context, actor authz.Actor, taskID uint64, input UpdateTaskInput) error {
	if !actor.IsProjectManager() {
		return ErrNotProjectManager
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.CanManageProject(actor, task.Project.ManagerID) {
		return ErrNotProjectOwner
	}

	if input.Status != nil && *input.Status != "" && *input.Status != task.Status {
		change, err := authz.ResolveStatusChange(actor, authz.TaskRefOf(task), *input.Status, s.now())
		if err != nil {
			return err
		}
		change.Apply(task)
	}

	if input.AssigneeID != nil && *input.AssigneeID != task.AssigneeID {
		if err := s.ensureProgrammer(ctx, *input.AssigneeID); err != nil {
			return err
		}
		task.AssigneeID = *input.AssigneeID
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		name, err := validateTaskName(*input.Name)
		if err != nil {
			return err
		}
		task.Name = name
	}

	task.Description = input.Description

	if input.Deadline != nil {
		task.Deadline = input.Deadline.UTC()
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	s.log.Info().
		Uint64("task_id", task.ID).
		Str("status", string(task.Status)).
		Msg("task updated")
	return nil
}

// UpdateTaskStatus moves a task to the requested status under the
// role-dependent transition policy.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, actor authz.Actor, taskID uint64, status models.TaskStatus) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	change, err := authz.ResolveStatusChange(actor, authz.TaskRefOf(task), status, s.now())
	if err != nil {
		return err
	}
	change.Apply(task)

	if err := s.taskRepo.UpdateStatus(ctx, task); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	s.log.Info().
		Uint64("task_id", task.ID).
		Uint64("actor_id", actor.ID).
		Str("status", string(task.Status)).
		Msg("task status changed")
	return nil
}

// DeleteTask deletes a task of a project the actor owns, with its time entries
func (s *TaskService) DeleteTask(ctx context.Context, actor authz.Actor, taskID uint64) error {
	if !actor.IsProjectManager() {
		return ErrNotProjectManager
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.CanManageProject(actor, task.Project.ManagerID) {
		return ErrNotProjectOwner
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log.Info().
		Uint64("task_id", taskID).
		Msg("task deleted")
	return nil
}

// ListMyTasks lists the actor's tasks, optionally filtered by status.
// Programmers get their assigned tasks, managers the tasks of their projects.
func (s *TaskService) ListMyTasks(ctx context.Context, actor authz.Actor, status string) ([]models.Task, error) {
	filter, err := myTasksFilter(actor)
	if err != nil {
		return nil, err
	}

	if status != "" {
		taskStatus := models.TaskStatus(status)
		if !taskStatus.Valid() {
			return nil, authz.ErrInvalidStatus
		}
		filter.Status = &taskStatus
	}

	return s.taskRepo.List(ctx, filter)
}

// GetMyTaskStats computes statistics over the programmer's assigned tasks
func (s *TaskService) GetMyTaskStats(ctx context.Context, actor authz.Actor) (TaskStats, error) {
	if !actor.IsProgrammer() {
		return TaskStats{}, ErrStatsProgrammerOnly
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{AssigneeID: &actor.ID})
	if err != nil {
		return TaskStats{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	return ComputeTaskStats(tasks, s.now()), nil
}

func myTasksFilter(actor authz.Actor) (repository.TaskFilter, error) {
	switch {
	case actor.IsProgrammer():
		return repository.TaskFilter{AssigneeID: &actor.ID}, nil
	case actor.IsProjectManager():
		return repository.TaskFilter{ManagerID: &actor.ID}, nil
	default:
		return repository.TaskFilter{}, authz.ErrInvalidUserType
	}
}

func (s *TaskService) findTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureProgrammer(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignee
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	if user.UserType != models.UserTypeProgrammer {
		return ErrInvalidAssignee
	}
	return nil
}

func validateTaskName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < minNameLength || n > maxTaskNameLength {
		return "", ErrTaskNameInvalid
	}
	return name, nil
}

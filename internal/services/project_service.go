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
	ErrProjectNotFound     = errors.New("project not found")
	ErrNotProjectManager   = errors.New("only project managers can perform this action")
	ErrNotProjectOwner     = errors.New("only the project manager who owns the project can perform this action")
	ErrProjectAccessDenied = errors.New("you do not have access to this project")
	ErrProjectNameInvalid  = errors.New("project name must be between 2 and 150 characters")
	ErrNegativeBudget      = errors.New("budget must be a positive number")
	ErrInvalidProgrammers  = errors.New("one or more ids do not reference a programmer")
)

const (
	minNameLength        = 2
	maxProjectNameLength = 150
)

// ProjectService handles project business logic
type ProjectService struct {
	log         zerolog.Logger
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	now         func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(log zerolog.Logger, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *ProjectService {
	return &ProjectService{
		log:         log,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		now:         time.Now,
	}
}

// ProjectInput represents the writable fields of a project
type ProjectInput struct {
	Name        string
	Description *string
	Budget      *float64
}

func (in ProjectInput) validate() (string, error) {
	name := strings.TrimSpace(in.Name)
	if n := len([]rune(name)); n < minNameLength || n > maxProjectNameLength {
		return "", ErrProjectNameInvalid
	}
	if in.Budget != nil && *in.Budget < 0 {
		return "", ErrNegativeBudget
	}
	return name, nil
}

// ListProjects returns the projects visible to the actor: owned projects for
// managers, projects holding an assigned task for programmers.
func (s *ProjectService) ListProjects(ctx context.Context, actor authz.Actor) ([]models.Project, error) {
	switch {
	case actor.IsProjectManager():
		return s.projectRepo.ListByManager(ctx, actor.ID)
	case actor.IsProgrammer():
		return s.projectRepo.ListByAssignee(ctx, actor.ID)
	default:
		return nil, authz.ErrInvalidUserType
	}
}

// GetProject returns a project the actor may view
func (s *ProjectService) GetProject(ctx context.Context, actor authz.Actor, id uint64) (*models.Project, error) {
	project, err := s.findProject(ctx, id, "Manager")
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanView(ctx, actor, project); err != nil {
		return nil, err
	}

	return project, nil
}

// CreateProject creates a project owned by the actor
func (s *ProjectService) CreateProject(ctx context.Context, actor authz.Actor, input ProjectInput) (*models.Project, error) {
	if !actor.IsProjectManager() {
		return nil, ErrNotProjectManager
	}

	name, err := input.validate()
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		Budget:      input.Budget,
		ManagerID:   actor.ID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.log.Info().
		Uint64("project_id", project.ID).
		Uint64("manager_id", actor.ID).
		Msg("project created")
	return project, nil
}

// UpdateProject replaces the writable fields of an owned project
func (s *ProjectService) UpdateProject(ctx context.Context, actor authz.Actor, id uint64, input ProjectInput) error {
	project, err := s.findOwnedProject(ctx, actor, id)
	if err != nil {
		return err
	}

	name, err := input.validate()
	if err != nil {
		return err
	}

	project.Name = name
	project.Description = input.Description
	project.Budget = input.Budget

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	s.log.Info().
		Uint64("project_id", project.ID).
		Msg("project updated")
	return nil
}

// DeleteProject deletes an owned project with its tasks, time entries and allocations
func (s *ProjectService) DeleteProject(ctx context.Context, actor authz.Actor, id uint64) error {
	if _, err := s.findOwnedProject(ctx, actor, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.log.Info().
		Uint64("project_id", id).
		Uint64("manager_id", actor.ID).
		Msg("project deleted")
	return nil
}

// ListProgrammers lists the programmers allocated to a visible project
func (s *ProjectService) ListProgrammers(ctx context.Context, actor authz.Actor, id uint64) ([]models.ProjectProgrammer, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanView(ctx, actor, project); err != nil {
		return nil, err
	}

	return s.projectRepo.ListAllocations(ctx, id)
}

// AllocateProgrammers replaces the project's allocations with programmerIDs.
// Duplicate ids collapse into one allocation and an empty list clears.
func (s *ProjectService) AllocateProgrammers(ctx context.Context, actor authz.Actor, id uint64, programmerIDs []uint64) ([]models.ProjectProgrammer, error) {
	if _, err := s.findOwnedProject(ctx, actor, id); err != nil {
		return nil, err
	}

	ids := uniqueIDs(programmerIDs)
	if err := s.projectRepo.ReplaceAllocations(ctx, id, ids, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrProgrammerNotFound) {
			return nil, ErrInvalidProgrammers
		}
		return nil, fmt.Errorf("failed to allocate programmers: %w", err)
	}

	s.log.Info().
		Uint64("project_id", id).
		Int("programmers", len(ids)).
		Msg("programmers allocated")
	return s.projectRepo.ListAllocations(ctx, id)
}

// ListProjectTasks lists the tasks of a visible project. Programmers only
// see the tasks assigned to them.
func (s *ProjectService) ListProjectTasks(ctx context.Context, actor authz.Actor, id uint64) ([]models.Task, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanView(ctx, actor, project); err != nil {
		return nil, err
	}

	filter := repository.TaskFilter{ProjectID: &project.ID}
	if actor.IsProgrammer() {
		filter.AssigneeID = &actor.ID
	}

	return s.taskRepo.List(ctx, filter)
}

func (s *ProjectService) findProject(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) findOwnedProject(ctx context.Context, actor authz.Actor, id uint64) (*models.Project, error) {
	if !actor.IsProjectManager() {
		return nil, ErrNotProjectManager
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanManageProject(actor, project.ManagerID) {
		return nil, ErrNotProjectOwner
	}
	return project, nil
}

func (s *ProjectService) ensureCanView(ctx context.Context, actor authz.Actor, project *models.Project) error {
	hasAssignedTask := false
	if actor.IsProgrammer() {
		var err error
		hasAssignedTask, err = s.projectRepo.HasTaskAssignedTo(ctx, project.ID, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to check task assignment: %w", err)
		}
	}

	if !authz.CanViewProject(actor, project.ManagerID, hasAssignedTask) {
		return ErrProjectAccessDenied
	}
	return nil
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

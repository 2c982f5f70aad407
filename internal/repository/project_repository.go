package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProgrammerNotFound is returned when an allocation names a user that
// does not exist or is not a programmer. No allocation row is changed.
var ErrProgrammerNotFound = errors.New("project repository: one or more programmers do not exist")

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project's own columns
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete time entries of the project's tasks
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TimeEntry{}).Error; err != nil {
			return err
		}

		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete all allocations
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectProgrammer{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// ListByManager lists the projects a manager owns
func (r *GormProjectRepository) ListByManager(ctx context.Context, managerID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("manager_id = ?", managerID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByAssignee lists the projects holding at least one task assigned to the user
func (r *GormProjectRepository) ListByAssignee(ctx context.Context, userID uint64) ([]models.Project, error) {
	var projects []models.Project

	assignedTaskSubQuery := r.db.WithContext(ctx).Model(&models.Task{}).
		Select("1").
		Where("tasks.project_id = projects.id").
		Where("tasks.assignee_id = ?", userID)

	if err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("EXISTS (?)", assignedTaskSubQuery).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// HasTaskAssignedTo reports whether the project holds a task assigned to the user
func (r *GormProjectRepository) HasTaskAssignedTo(ctx context.Context, projectID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("project_id = ? AND assignee_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListAllocations lists the programmers allocated to a project
func (r *GormProjectRepository) ListAllocations(ctx context.Context, projectID uint64) ([]models.ProjectProgrammer, error) {
	var allocations []models.ProjectProgrammer
	if err := r.db.WithContext(ctx).
		Preload("Programmer").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// ReplaceAllocations deletes every allocation of the project and inserts one
// row per programmer, all inside one transaction. programmerIDs must not
// contain duplicates; an empty slice only clears.
func (r *GormProjectRepository) ReplaceAllocations(ctx context.Context, projectID uint64, programmerIDs []uint64, allocatedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(programmerIDs) > 0 {
			var count int64
			if err := tx.Model(&models.User{}).
				Where("id IN ? AND user_type = ?", programmerIDs, models.UserTypeProgrammer).
				Count(&count).Error; err != nil {
				return err
			}
			if int(count) != len(programmerIDs) {
				return ErrProgrammerNotFound
			}
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectProgrammer{}).Error; err != nil {
			return err
		}

		if len(programmerIDs) == 0 {
			return nil
		}

		allocations := make([]models.ProjectProgrammer, len(programmerIDs))
		for i, programmerID := range programmerIDs {
			allocations[i] = models.ProjectProgrammer{
				ProjectID:      projectID,
				ProgrammerID:   programmerID,
				AllocationDate: allocatedAt,
			}
		}

		return tx.Omit(clause.Associations).Create(&allocations).Error
	})
}

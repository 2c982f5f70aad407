package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// Create creates a new time entry
func (r *GormTimeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

// FindByID finds a time entry with its task and user
func (r *GormTimeEntryRepository) FindByID(ctx context.Context, id uint64) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("User").
		First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByTask lists a task's entries, newest day first
func (r *GormTimeEntryRepository) ListByTask(ctx context.Context, taskID uint64) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("User").
		Where("task_id = ?", taskID).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Summarize aggregates a task's entries
func (r *GormTimeEntryRepository) Summarize(ctx context.Context, taskID uint64) (*TimeEntrySummary, error) {
	var totals struct {
		TotalHours   float64
		EntriesCount int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.TimeEntry{}).
		Select("COALESCE(SUM(hours), 0) AS total_hours, COUNT(*) AS entries_count").
		Where("task_id = ?", taskID).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	summary := &TimeEntrySummary{
		TotalHours:   totals.TotalHours,
		EntriesCount: totals.EntriesCount,
	}
	if totals.EntriesCount == 0 {
		return summary, nil
	}

	var last models.TimeEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("date DESC, id DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		summary.LastEntryDate = &last.Date
		summary.LastEntryHours = &last.Hours
	}

	return summary, nil
}

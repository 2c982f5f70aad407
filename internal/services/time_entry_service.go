package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

var (
	ErrOnlyProgrammersLogTime = errors.New("only programmers can log time for tasks")
	ErrTimeEntryNotAssignee   = errors.New("you can only log time for tasks assigned to you")
	ErrHoursOutOfRange        = errors.New("hours must be between 0.1 and 24")
	ErrInvalidEntryDate       = errors.New("date must be RFC3339 or YYYY-MM-DD")
)

// TimeEntryService handles time tracking business logic
type TimeEntryService struct {
	log       zerolog.Logger
	entryRepo repository.TimeEntryRepository
	tasks     *TaskService
}

// NewTimeEntryService creates a new TimeEntryService. Task lookups and
// visibility checks go through tasks.
func NewTimeEntryService(log zerolog.Logger, entryRepo repository.TimeEntryRepository, tasks *TaskService) *TimeEntryService {
	return &TimeEntryService{
		log:       log,
		entryRepo: entryRepo,
		tasks:     tasks,
	}
}

// CreateTimeEntryInput represents input for logging time on a task
type CreateTimeEntryInput struct {
	TaskID uint64
	Date   time.Time
	Hours  float64
	Notes  *string
}

// ListTaskEntries lists the entries of a task the actor may view, newest first
func (s *TimeEntryService) ListTaskEntries(ctx context.Context, actor authz.Actor, taskID uint64) ([]models.TimeEntry, error) {
	if _, err := s.tasks.GetTask(ctx, actor, taskID); err != nil {
		return nil, err
	}

	return s.entryRepo.ListByTask(ctx, taskID)
}

// CreateTimeEntry logs time for the actor on a task assigned to them
func (s *TimeEntryService) CreateTimeEntry(ctx context.Context, actor authz.Actor, input CreateTimeEntryInput) (*models.TimeEntry, error) {
	if !actor.IsProgrammer() {
		s.log.Warn().
			Uint64("user_id", actor.ID).
			Int("user_type", int(actor.Type)).
			Msg("non-programmer attempted to log time")
		return nil, ErrOnlyProgrammersLogTime
	}
	if input.Hours < constants.MinLoggedHours || input.Hours > constants.MaxLoggedHours {
		return nil, ErrHoursOutOfRange
	}

	task, err := s.tasks.findTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task.AssigneeID != actor.ID {
		s.log.Warn().
			Uint64("user_id", actor.ID).
			Uint64("task_id", task.ID).
			Msg("programmer attempted to log time for unassigned task")
		return nil, ErrTimeEntryNotAssignee
	}

	entry := &models.TimeEntry{
		TaskID: task.ID,
		UserID: actor.ID,
		Date:   truncateToDay(input.Date),
		Hours:  input.Hours,
		Notes:  input.Notes,
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	s.log.Info().
		Uint64("time_entry_id", entry.ID).
		Uint64("task_id", entry.TaskID).
		Uint64("user_id", entry.UserID).
		Float64("hours", entry.Hours).
		Msg("time entry created")
	return s.entryRepo.FindByID(ctx, entry.ID)
}

// SummarizeTask aggregates the time logged on a task the actor may view
func (s *TimeEntryService) SummarizeTask(ctx context.Context, actor authz.Actor, taskID uint64) (*repository.TimeEntrySummary, error) {
	if _, err := s.tasks.GetTask(ctx, actor, taskID); err != nil {
		return nil, err
	}

	summary, err := s.entryRepo.Summarize(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize time entries: %w", err)
	}
	return summary, nil
}

// ParseEntryDate accepts an RFC3339 timestamp or a bare YYYY-MM-DD day.
func ParseEntryDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(constants.EntryDateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidEntryDate
}

// truncateToDay keeps the calendar day of t as midnight UTC.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// TimeEntryHandler serves time tracking endpoints.
type TimeEntryHandler struct {
	log     zerolog.Logger
	entries *services.TimeEntryService
}

// NewTimeEntryHandler creates a new TimeEntryHandler.
func NewTimeEntryHandler(log zerolog.Logger, entries *services.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{
		log:     log,
		entries: entries,
	}
}

// ListTaskEntries lists the time logged on a task, newest day first
func (h *TimeEntryHandler) ListTaskEntries(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId", "task")
	if !ok {
		return
	}

	entries, err := h.entries.ListTaskEntries(c.Request.Context(), actor, taskID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryDTOs(entries))
}

// CreateTimeEntry logs time on a task assigned to the caller
func (h *TimeEntryHandler) CreateTimeEntry(c *gin.Context) {
	type CreateTimeEntryRequest struct {
		TaskID uint64  `json:"taskId" binding:"required"`
		Date   string  `json:"date" binding:"required"`
		Hours  float64 `json:"hours"`
		Notes  *string `json:"notes" binding:"omitempty,max=4000"`
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date, err := services.ParseEntryDate(req.Date)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	entry, err := h.entries.CreateTimeEntry(c.Request.Context(), actor, services.CreateTimeEntryInput{
		TaskID: req.TaskID,
		Date:   date,
		Hours:  req.Hours,
		Notes:  req.Notes,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryDTO(*entry))
}

// GetTaskSummary aggregates the time logged on a task
func (h *TimeEntryHandler) GetTaskSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId", "task")
	if !ok {
		return
	}

	summary, err := h.entries.SummarizeTask(c.Request.Context(), actor, taskID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.TimeEntrySummaryDTO{
		TaskID:         taskID,
		TotalHours:     summary.TotalHours,
		EntriesCount:   summary.EntriesCount,
		LastEntryDate:  summary.LastEntryDate,
		LastEntryHours: summary.LastEntryHours,
	})
}

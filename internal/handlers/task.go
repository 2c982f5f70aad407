package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// TaskHandler serves task endpoints.
type TaskHandler struct {
	log   zerolog.Logger
	tasks *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(log zerolog.Logger, tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{
		log:   log,
		tasks: tasks,
	}
}

// GetTask returns a task visible to the caller
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task in a project owned by the caller
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name        string            `json:"name" binding:"required,max=200"`
		Description *string           `json:"description" binding:"omitempty,max=4000"`
		Deadline    time.Time         `json:"deadline" binding:"required"`
		Status      models.TaskStatus `json:"status"`
		ProjectID   uint64            `json:"projectId" binding:"required"`
		AssigneeID  uint64            `json:"assigneeId" binding:"required"`
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates a task in a project owned by the caller
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Name        *string            `json:"name" binding:"omitempty,max=200"`
		Description *string            `json:"description" binding:"omitempty,max=4000"`
		Deadline    *time.Time         `json:"deadline"`
		Status      *models.TaskStatus `json:"status"`
		AssigneeID  *uint64            `json:"assigneeId"`
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.tasks.UpdateTask(c.Request.Context(), actor, id, services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateTaskStatus moves a task to a new status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.tasks.UpdateTaskStatus(c.Request.Context(), actor, id, req.Status); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTask deletes a task in a project owned by the caller
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMyTasks lists the caller's tasks, optionally filtered by ?status=
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListMyTasks(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetMyTaskStats returns statistics over the caller's assigned tasks
func (h *TaskHandler) GetMyTaskStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.tasks.GetMyTaskStats(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskStatsDTO{
		TotalTasks:      stats.Total,
		PendingTasks:    stats.Pending,
		InProgressTasks: stats.InProgress,
		CompletedTasks:  stats.Completed,
		BlockedTasks:    stats.Blocked,
		OverdueTasks:    stats.Overdue,
		CompletionRate:  stats.CompletionRate(),
	})
}

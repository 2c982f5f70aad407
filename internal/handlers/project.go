package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// ProjectHandler serves project and allocation endpoints.
type ProjectHandler struct {
	log      zerolog.Logger
	projects *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(log zerolog.Logger, projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		log:      log,
		projects: projects,
	}
}

type projectRequest struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name" binding:"required,max=150"`
	Description *string  `json:"description" binding:"omitempty,max=4000"`
	Budget      *float64 `json:"budget"`
}

func (r projectRequest) input() services.ProjectInput {
	return services.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Budget:      r.Budget,
	}
}

// ListProjects returns the projects visible to the caller
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	projects, err := h.projects.ListProjects(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns a single visible project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projects.GetProject(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project owned by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), actor, req.input())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject replaces the writable fields of an owned project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.ID != 0 && req.ID != id {
		apierrors.BadRequest(c, "ID mismatch")
		return
	}

	if err := h.projects.UpdateProject(c.Request.Context(), actor, id, req.input()); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteProject deletes an owned project and everything under it
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projects.DeleteProject(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListProgrammers lists the programmers allocated to a project
func (h *ProjectHandler) ListProgrammers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	allocations, err := h.projects.ListProgrammers(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectProgrammerDTOs(allocations))
}

// AllocateProgrammers replaces the programmers allocated to a project
func (h *ProjectHandler) AllocateProgrammers(c *gin.Context) {
	type AllocateRequest struct {
		ProgrammerIDs []uint64 `json:"programmerIds" binding:"required"`
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	allocations, err := h.projects.AllocateProgrammers(c.Request.Context(), actor, id, req.ProgrammerIDs)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectProgrammerDTOs(allocations))
}

// ListProjectTasks lists the tasks of a visible project
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "project")
	if !ok {
		return
	}

	tasks, err := h.projects.ListProjectTasks(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

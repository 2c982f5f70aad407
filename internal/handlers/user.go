package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// UserHandler serves user directory endpoints.
type UserHandler struct {
	log   zerolog.Logger
	users *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(log zerolog.Logger, users *services.UserService) *UserHandler {
	return &UserHandler{
		log:   log,
		users: users,
	}
}

// ListProgrammers lists every programmer, for allocation and assignment pickers
func (h *UserHandler) ListProgrammers(c *gin.Context) {
	users, err := h.users.ListProgrammers(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

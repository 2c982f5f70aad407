package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// respondServiceError maps service and policy errors onto API errors.
// Anything unrecognised is logged and answered with a generic 500.
func respondServiceError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, authz.ErrForbidden),
		errors.Is(err, services.ErrNotProjectManager),
		errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrTaskAccessDenied),
		errors.Is(err, services.ErrOnlyProgrammersLogTime),
		errors.Is(err, services.ErrTimeEntryNotAssignee),
		errors.Is(err, services.ErrStatsProgrammerOnly):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, authz.ErrInvalidStatus),
		errors.Is(err, authz.ErrInvalidUserType),
		errors.Is(err, authz.ErrManagerStatusNotAllowed),
		errors.Is(err, authz.ErrProgrammerCannotBlock),
		errors.Is(err, services.ErrProjectNameInvalid),
		errors.Is(err, services.ErrNegativeBudget),
		errors.Is(err, services.ErrInvalidProgrammers),
		errors.Is(err, services.ErrTaskNameInvalid),
		errors.Is(err, services.ErrDeadlineRequired),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrHoursOutOfRange),
		errors.Is(err, services.ErrInvalidEntryDate):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, gorm.ErrDuplicatedKey):
		apierrors.Conflict(c, "")

	default:
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		apierrors.InternalError(c, "")
	}
}

func respondAuthError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrPasswordTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at most %d characters", constants.MaxPasswordLength))
	case errors.Is(err, services.ErrFullNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidUserType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	default:
		respondServiceError(c, log, err)
	}
}

// requireActor returns the authenticated caller or answers 401.
func requireActor(c *gin.Context) (authz.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "User not authenticated properly")
		return authz.Actor{}, false
	}
	return actor, true
}

// parseIDParam reads a positive numeric path parameter or answers 400.
func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

func respondBindError(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
}

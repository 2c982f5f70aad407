package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (*services.Identity, error)
}

// RequireAuth checks the bearer token and stores the caller identity in
// the context.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		identity, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyUserType, identity.UserType)
		c.Next()
	}
}

// RequireUserType rejects callers whose role is not userType.
func RequireUserType(userType models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}
		if actor.Type != userType {
			apierrors.Forbidden(c, "Only "+userType.Description()+"s can perform this action")
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetActor retrieves the authenticated caller from context
func GetActor(c *gin.Context) (authz.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return authz.Actor{}, false
	}

	userType, ok := c.Get(constants.ContextKeyUserType)
	if !ok {
		return authz.Actor{}, false
	}
	t, ok := userType.(models.UserType)
	if !ok || !t.Valid() {
		return authz.Actor{}, false
	}

	return authz.Actor{ID: userID, Type: t}, true
}

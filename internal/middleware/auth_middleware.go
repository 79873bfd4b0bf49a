package middleware

import (
	"net/http"
	"strings"

	"go-vacation/internal/auth"
	autherrors "go-vacation/internal/auth/errors"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextExternalID  = "external_id"
	ContextEmail       = "email"
	ContextDisplayName = "display_name"
	ContextUserID      = "user_id"
	ContextRole        = "role"
	ContextActor       = "actor"
)

// AuthMiddleware verifies the bearer token (or access_token cookie) and
// stores the caller's identity on the gin context.
func AuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextExternalID, identity.ExternalID)
		c.Set(ContextEmail, identity.Email)
		c.Set(ContextDisplayName, identity.DisplayName)

		c.Next()
	}
}

// RoleMiddleware gates a route on the coarse role set by ResolveUser.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextRole)
		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}
		abortWithError(c, autherrors.ErrForbidden)
	}
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}

var errMissingAuthContext = apperror.New(apperror.CodeUnauthorized, "missing auth context", http.StatusUnauthorized)

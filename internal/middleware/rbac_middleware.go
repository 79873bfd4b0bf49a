package middleware

import (
	"go-vacation/internal/domain"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can enforce a role policy.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize is the coarse route gate. It must run after ResolveUser.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		role := c.GetString(ContextRole)
		if userID == "" || role == "" {
			abortWithError(c, errMissingAuthContext)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Subject:  userID,
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortWithError(c, apperror.Wrap(err, apperror.CodeInternalError, "Internal server error", http.StatusInternalServerError))
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

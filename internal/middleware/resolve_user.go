package middleware

import (
	"context"

	"go-vacation/internal/domain"
	"go-vacation/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserResolver interface {
	Resolve(ctx context.Context, identity domain.Identity) (*domain.User, error)
}

// ResolveUser maps the verified identity onto a local user and exposes it
// as the request actor. It must run after AuthMiddleware.
func ResolveUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := domain.Identity{
			ExternalID:  c.GetString(ContextExternalID),
			Email:       c.GetString(ContextEmail),
			DisplayName: c.GetString(ContextDisplayName),
		}
		if identity.ExternalID == "" {
			abortWithError(c, errMissingAuthContext)
			return
		}

		ctx := c.Request.Context()
		user, err := resolver.Resolve(ctx, identity)
		if err != nil {
			contextutil.GetLogger(ctx, zap.L()).Warn("resolve user failed",
				zap.String("external_id", identity.ExternalID),
				zap.Error(err),
			)
			abortWithError(c, err)
			return
		}

		uid := user.ID.String()
		c.Set(ContextActor, user)
		c.Set(ContextUserID, uid)
		c.Set(ContextRole, domain.RoleOf(user))

		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", uid)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

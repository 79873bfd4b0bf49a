package user

import (
	"go-vacation/internal/middleware"
	"go-vacation/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts /users. authMiddlewares must authenticate the caller
// and resolve the actor.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	authMiddlewares ...gin.HandlerFunc,
) {
	users := r.Group("/users")
	users.Use(authMiddlewares...)
	{
		users.GET("/me",
			middleware.RateLimitByUser(5, 10),
			handler.Me,
		)

		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead),
			handler.GetByID,
		)

		users.PUT("/:id/manager",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionManage),
			handler.SetManager,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionManage),
			handler.Delete,
		)
	}
}

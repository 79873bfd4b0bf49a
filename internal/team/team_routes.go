package team

import (
	"go-vacation/internal/middleware"
	"go-vacation/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	authMiddlewares ...gin.HandlerFunc,
) {
	teams := r.Group("/teams")
	teams.Use(authMiddlewares...)
	{
		teams.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionRead), h.GetAll)
		teams.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionRead), h.GetByID)

		teams.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionManage),
			h.Create,
		)
		teams.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionManage),
			h.Update,
		)
		teams.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionManage),
			h.Delete,
		)

		teams.POST("/:id/members",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionManage),
			h.AddMember,
		)
		teams.DELETE("/:id/members/:userId",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTeam, rbac.ActionManage),
			h.RemoveMember,
		)
	}
}

package vacation

import (
	"go-vacation/internal/middleware"
	"go-vacation/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	authMiddlewares ...gin.HandlerFunc,
) {
	vacations := r.Group("/vacations")
	vacations.Use(authMiddlewares...)
	{
		vacations.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		vacations.POST("/validate",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionCreate),
			handler.Validate,
		)

		vacations.GET("/me", middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionRead), handler.Mine)
		vacations.GET("/team", middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionRead), handler.TeamCalendar)
		vacations.GET("/team/pending", middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionRead), handler.TeamPending)

		vacations.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionRead), handler.GetByID)
		vacations.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionUpdate),
			handler.Update,
		)
		vacations.DELETE("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionDelete),
			handler.Delete,
		)

		vacations.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		vacations.POST("/:id/reject",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceVacation, rbac.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Reject,
		)
	}
}

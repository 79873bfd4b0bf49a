package notification

import (
	"go-vacation/internal/middleware"
	"go-vacation/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	authMiddlewares ...gin.HandlerFunc,
) {
	notifications := r.Group("/notifications")
	notifications.Use(authMiddlewares...)
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), handler.List)
		notifications.PUT("/:id/read", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), handler.MarkRead)
	}
}

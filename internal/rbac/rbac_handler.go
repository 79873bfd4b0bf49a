package rbac

import (
	"net/http"
	"strings"

	"go-vacation/internal/domain"
	"go-vacation/internal/middleware"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

type checkRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// Enforce answers whether the calling user's role may perform an action.
func (h *Handler) Enforce(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	enforceReq := domain.EnforceRequest{
		Subject:  c.GetString("user_id"),
		Role:     c.GetString("role"),
		Resource: strings.TrimSpace(req.Resource),
		Action:   strings.TrimSpace(req.Action),
	}
	if enforceReq.Role == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}

	allowed, err := h.service.Enforce(enforceReq)
	if err != nil {
		h.logger.Error("http rbac enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
		return
	}

	perms, err := h.service.PermissionsForRole(role)
	if err != nil {
		h.logger.Error("http rbac permissions failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, perms, nil)
}

// RolePermissions lists what any role may do. Managers only.
func (h *Handler) RolePermissions(c *gin.Context) {
	role := strings.TrimSpace(c.Param("role"))
	if role != domain.RoleEmployee && role != domain.RoleManager {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "role not found", nil)
		return
	}

	perms, err := h.service.PermissionsForRole(role)
	if err != nil {
		h.logger.Error("http rbac role permissions failed", zap.String("role", role), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, perms, nil)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authMiddlewares ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(authMiddlewares...)
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/permissions", handler.MyPermissions)
		group.GET("/roles/:role/permissions", middleware.RoleMiddleware(domain.RoleManager), handler.RolePermissions)
	}
}

package vacation

import (
	"encoding/json"
	"net/http"

	"go-vacation/internal/domain"
	"go-vacation/internal/middleware"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("vacation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func getActor(c *gin.Context) *domain.User {
	v, ok := c.Get(middleware.ContextActor)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("vacation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("http vacation validation failed", zap.Error(err))
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
}

// releaseIdempotencyLock must be deferred by handlers mounted behind
// middleware.Idempotency.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk := c.GetString(middleware.ContextIdempotencyLockKey); lk != "" {
		h.rdb.Del(c.Request.Context(), lk)
	}
}

func (h *Handler) rememberResult(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	ck := c.GetString(middleware.ContextIdempotencyCacheKey)
	if ck == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.rdb.Set(c.Request.Context(), ck, payload, middleware.IdempotencyTTL).Err(); err != nil {
		h.logger.Warn("store idempotent result failed", zap.String("key", ck), zap.Error(err))
	}
}

func (h *Handler) Create(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.rememberResult(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Validate(c *gin.Context) {
	var req CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Validate(c.Request.Context(), getActor(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Mine(c *gin.Context) {
	var filter ListVacationsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Mine(c.Request.Context(), getActor(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), getActor(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	resp, err := h.service.Approve(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.rememberResult(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req RejectVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), getActor(c), c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.rememberResult(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TeamCalendar(c *gin.Context) {
	var filter CalendarFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.TeamCalendar(c.Request.Context(), getActor(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TeamPending(c *gin.Context) {
	resp, err := h.service.TeamPending(c.Request.Context(), getActor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

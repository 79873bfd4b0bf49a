package notification_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-vacation/internal/domain"
	"go-vacation/internal/events"
	"go-vacation/internal/middleware"
	"go-vacation/internal/notification"
	notificationerrors "go-vacation/internal/notification/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotificationService struct {
	listFn     func(ctx context.Context, actor *domain.User, filter notification.ListNotificationsFilter) ([]notification.NotificationResponse, error)
	markReadFn func(ctx context.Context, actor *domain.User, id string) (notification.NotificationResponse, error)
}

func (f *fakeNotificationService) HandleVacationDecided(context.Context, events.VacationDecidedEvent) error {
	return nil
}
func (f *fakeNotificationService) List(ctx context.Context, actor *domain.User, filter notification.ListNotificationsFilter) ([]notification.NotificationResponse, error) {
	return f.listFn(ctx, actor, filter)
}
func (f *fakeNotificationService) MarkRead(ctx context.Context, actor *domain.User, id string) (notification.NotificationResponse, error) {
	return f.markReadFn(ctx, actor, id)
}

func newNotificationRouter(svc notification.Service, actor *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextActor, actor)
		c.Next()
	})
	h := notification.NewHandler(svc, zap.NewNop())
	r.GET("/notifications", h.List)
	r.PUT("/notifications/:id/read", h.MarkRead)
	return r
}

func TestNotificationHandler_List(t *testing.T) {
	actor := &domain.User{ID: uuid.New()}

	t.Run("binds filter", func(t *testing.T) {
		svc := &fakeNotificationService{
			listFn: func(_ context.Context, a *domain.User, f notification.ListNotificationsFilter) ([]notification.NotificationResponse, error) {
				assert.Same(t, actor, a)
				assert.True(t, f.UnreadOnly)
				assert.Equal(t, 5, f.Limit)
				return []notification.NotificationResponse{{ID: "n-1"}}, nil
			},
		}

		w := httptest.NewRecorder()
		newNotificationRouter(svc, actor).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?unread=true&limit=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var env struct {
			Ok   bool                                `json:"ok"`
			Data []notification.NotificationResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.Len(t, env.Data, 1)
	})

	t.Run("limit out of range", func(t *testing.T) {
		w := httptest.NewRecorder()
		newNotificationRouter(&fakeNotificationService{}, actor).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?limit=1000", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	svc := &fakeNotificationService{
		markReadFn: func(context.Context, *domain.User, string) (notification.NotificationResponse, error) {
			return notification.NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		},
	}

	w := httptest.NewRecorder()
	newNotificationRouter(svc, &domain.User{ID: uuid.New()}).
		ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/notifications/"+uuid.NewString()+"/read", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

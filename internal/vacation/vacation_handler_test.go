package vacation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-vacation/internal/domain"
	"go-vacation/internal/middleware"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/outcome"
	"go-vacation/internal/vacation"
	vacationerrors "go-vacation/internal/vacation/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeVacationService struct {
	createFn       func(ctx context.Context, actor *domain.User, req vacation.CreateVacationRequest) (vacation.VacationResponse, error)
	validateFn     func(ctx context.Context, actor *domain.User, req vacation.CreateVacationRequest) (vacation.ValidateVacationResponse, error)
	mineFn         func(ctx context.Context, actor *domain.User, filter vacation.ListVacationsFilter) ([]vacation.VacationResponse, error)
	getByIDFn      func(ctx context.Context, actor *domain.User, id string) (vacation.VacationResponse, error)
	updateFn       func(ctx context.Context, actor *domain.User, id string, req vacation.UpdateVacationRequest) (vacation.VacationResponse, error)
	deleteFn       func(ctx context.Context, actor *domain.User, id string) error
	approveFn      func(ctx context.Context, actor *domain.User, id string) (vacation.VacationResponse, error)
	rejectFn       func(ctx context.Context, actor *domain.User, id, reason string) (vacation.VacationResponse, error)
	teamCalendarFn func(ctx context.Context, actor *domain.User, filter vacation.CalendarFilter) ([]vacation.VacationResponse, error)
	teamPendingFn  func(ctx context.Context, actor *domain.User) ([]vacation.VacationResponse, error)
}

func (f *fakeVacationService) Create(ctx context.Context, actor *domain.User, req vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeVacationService) Validate(ctx context.Context, actor *domain.User, req vacation.CreateVacationRequest) (vacation.ValidateVacationResponse, error) {
	return f.validateFn(ctx, actor, req)
}
func (f *fakeVacationService) Mine(ctx context.Context, actor *domain.User, filter vacation.ListVacationsFilter) ([]vacation.VacationResponse, error) {
	return f.mineFn(ctx, actor, filter)
}
func (f *fakeVacationService) GetByID(ctx context.Context, actor *domain.User, id string) (vacation.VacationResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}
func (f *fakeVacationService) Update(ctx context.Context, actor *domain.User, id string, req vacation.UpdateVacationRequest) (vacation.VacationResponse, error) {
	return f.updateFn(ctx, actor, id, req)
}
func (f *fakeVacationService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return f.deleteFn(ctx, actor, id)
}
func (f *fakeVacationService) Approve(ctx context.Context, actor *domain.User, id string) (vacation.VacationResponse, error) {
	return f.approveFn(ctx, actor, id)
}
func (f *fakeVacationService) Reject(ctx context.Context, actor *domain.User, id, reason string) (vacation.VacationResponse, error) {
	return f.rejectFn(ctx, actor, id, reason)
}
func (f *fakeVacationService) TeamCalendar(ctx context.Context, actor *domain.User, filter vacation.CalendarFilter) ([]vacation.VacationResponse, error) {
	return f.teamCalendarFn(ctx, actor, filter)
}
func (f *fakeVacationService) TeamPending(ctx context.Context, actor *domain.User) ([]vacation.VacationResponse, error) {
	return f.teamPendingFn(ctx, actor)
}

func newVacationRouter(svc vacation.Service, actor *domain.User, rdb *redis.Client, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ContextActor, actor)
		}
		c.Next()
	})
	r.Use(pre...)

	h := vacation.NewHandler(svc, rdb, zap.NewNop())
	r.POST("/vacations", h.Create)
	r.POST("/vacations/validate", h.Validate)
	r.GET("/vacations/me", h.Mine)
	r.GET("/vacations/team", h.TeamCalendar)
	r.GET("/vacations/team/pending", h.TeamPending)
	r.GET("/vacations/:id", h.GetByID)
	r.PUT("/vacations/:id", h.Update)
	r.DELETE("/vacations/:id", h.Delete)
	r.POST("/vacations/:id/approve", h.Approve)
	r.POST("/vacations/:id/reject", h.Reject)
	return r
}

func TestVacationHandler_Create(t *testing.T) {
	actor := &domain.User{ID: uuid.New()}

	t.Run("success", func(t *testing.T) {
		svc := &fakeVacationService{
			createFn: func(_ context.Context, a *domain.User, req vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
				assert.Same(t, actor, a)
				assert.Equal(t, "2026-03-02", req.StartDate)
				assert.Equal(t, "SICK", req.Type)
				return vacation.VacationResponse{ID: "v-1", Status: "PENDING"}, nil
			},
		}

		body := `{"start_date":"2026-03-02","end_date":"2026-03-04","type":"SICK"}`
		w := httptest.NewRecorder()
		newVacationRouter(svc, actor, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got vacation.VacationResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "v-1", got.ID)
	})

	t.Run("missing end date", func(t *testing.T) {
		w := httptest.NewRecorder()
		newVacationRouter(&fakeVacationService{}, actor, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations", strings.NewReader(`{"start_date":"2026-03-02"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		svc := &fakeVacationService{
			createFn: func(context.Context, *domain.User, vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
				return vacation.VacationResponse{}, apperror.FromOutcome(outcome.Failure("overlaps", outcome.CodeVacationOverlap))
			},
		}

		body := `{"start_date":"2026-03-02","end_date":"2026-03-04"}`
		w := httptest.NewRecorder()
		newVacationRouter(svc, actor, nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, outcome.CodeVacationOverlap, env.Error.Code)
		assert.Equal(t, "overlaps", env.Error.Message)
	})

	t.Run("stores result and releases lock for idempotent replays", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		require.NoError(t, mr.Set("lock:key", "1"))

		svc := &fakeVacationService{
			createFn: func(context.Context, *domain.User, vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
				return vacation.VacationResponse{ID: "v-9"}, nil
			},
		}
		keys := func(c *gin.Context) {
			c.Set(middleware.ContextIdempotencyCacheKey, "result:key")
			c.Set(middleware.ContextIdempotencyLockKey, "lock:key")
			c.Next()
		}

		body := `{"start_date":"2026-03-02","end_date":"2026-03-04"}`
		w := httptest.NewRecorder()
		newVacationRouter(svc, actor, rdb, keys).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		stored, err := mr.Get("result:key")
		require.NoError(t, err)
		assert.Contains(t, stored, `"id":"v-9"`)
		assert.False(t, mr.Exists("lock:key"))
	})
}

func TestVacationHandler_Validate(t *testing.T) {
	svc := &fakeVacationService{
		validateFn: func(context.Context, *domain.User, vacation.CreateVacationRequest) (vacation.ValidateVacationResponse, error) {
			return vacation.ValidateVacationResponse{
				Valid:    false,
				Failures: []vacation.ValidationFailure{{Code: outcome.CodeVacationOverlap, Reason: "overlaps"}},
			}, nil
		},
	}

	body := `{"start_date":"2026-03-02","end_date":"2026-03-04"}`
	w := httptest.NewRecorder()
	newVacationRouter(svc, &domain.User{ID: uuid.New()}, nil).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations/validate", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got vacation.ValidateVacationResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.Valid)
	assert.Len(t, got.Failures, 1)
}

func TestVacationHandler_Mine(t *testing.T) {
	t.Run("forwards status filter", func(t *testing.T) {
		svc := &fakeVacationService{
			mineFn: func(_ context.Context, _ *domain.User, f vacation.ListVacationsFilter) ([]vacation.VacationResponse, error) {
				assert.Equal(t, "APPROVED", f.Status)
				return []vacation.VacationResponse{{ID: "v-1"}}, nil
			},
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, &domain.User{ID: uuid.New()}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vacations/me?status=APPROVED", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := httptest.NewRecorder()
		newVacationRouter(&fakeVacationService{}, &domain.User{ID: uuid.New()}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vacations/me?status=LOST", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVacationHandler_GetByID(t *testing.T) {
	svc := &fakeVacationService{
		getByIDFn: func(_ context.Context, _ *domain.User, id string) (vacation.VacationResponse, error) {
			assert.Equal(t, "abc", id)
			return vacation.VacationResponse{}, vacationerrors.ErrInvalidVacationID
		},
	}

	w := httptest.NewRecorder()
	newVacationRouter(svc, &domain.User{ID: uuid.New()}, nil).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vacations/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, vacationerrors.ErrInvalidVacationID.Code, env.Error.Code)
}

func TestVacationHandler_Update(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeVacationService{
		updateFn: func(_ context.Context, _ *domain.User, gotID string, req vacation.UpdateVacationRequest) (vacation.VacationResponse, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, "2026-03-05", req.EndDate)
			return vacation.VacationResponse{ID: gotID}, nil
		},
	}

	body := `{"start_date":"2026-03-02","end_date":"2026-03-05"}`
	w := httptest.NewRecorder()
	newVacationRouter(svc, &domain.User{ID: uuid.New()}, nil).
		ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/vacations/"+id, strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVacationHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeVacationService{
			deleteFn: func(context.Context, *domain.User, string) error { return nil },
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, &domain.User{ID: uuid.New()}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/vacations/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":true`)
	})

	t.Run("not pending", func(t *testing.T) {
		svc := &fakeVacationService{
			deleteFn: func(context.Context, *domain.User, string) error { return vacationerrors.ErrNotPending },
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, &domain.User{ID: uuid.New()}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/vacations/"+uuid.NewString(), nil))

		assert.Equal(t, vacationerrors.ErrNotPending.HTTPStatus, w.Code)
	})
}

func TestVacationHandler_Approve(t *testing.T) {
	t.Run("forbidden for other team", func(t *testing.T) {
		svc := &fakeVacationService{
			approveFn: func(context.Context, *domain.User, string) (vacation.VacationResponse, error) {
				return vacation.VacationResponse{}, apperror.FromOutcome(outcome.Failure("target user is not in your team", outcome.CodeSameTeamRequired))
			},
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, &domain.User{ID: uuid.New(), IsManager: true}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations/"+uuid.NewString()+"/approve", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, outcome.CodeSameTeamRequired, env.Error.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeVacationService{
			approveFn: func(_ context.Context, _ *domain.User, id string) (vacation.VacationResponse, error) {
				return vacation.VacationResponse{ID: id, Status: "APPROVED"}, nil
			},
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, &domain.User{ID: uuid.New(), IsManager: true}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations/"+uuid.NewString()+"/approve", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)
	})
}

func TestVacationHandler_Reject(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		w := httptest.NewRecorder()
		newVacationRouter(&fakeVacationService{}, &domain.User{ID: uuid.New()}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations/"+uuid.NewString()+"/reject", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forwards reason", func(t *testing.T) {
		svc := &fakeVacationService{
			rejectFn: func(_ context.Context, _ *domain.User, _ string, reason string) (vacation.VacationResponse, error) {
				assert.Equal(t, "too many people out", reason)
				return vacation.VacationResponse{Status: "REJECTED", RejectionReason: &reason}, nil
			},
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, &domain.User{ID: uuid.New(), IsManager: true}, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/vacations/"+uuid.NewString()+"/reject",
				strings.NewReader(`{"reason":"too many people out"}`)))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestVacationHandler_Team(t *testing.T) {
	actor := &domain.User{ID: uuid.New()}

	t.Run("calendar forwards window", func(t *testing.T) {
		svc := &fakeVacationService{
			teamCalendarFn: func(_ context.Context, _ *domain.User, f vacation.CalendarFilter) ([]vacation.VacationResponse, error) {
				assert.Equal(t, "2026-03-01", f.From)
				assert.Equal(t, "2026-03-31", f.To)
				return []vacation.VacationResponse{}, nil
			},
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, actor, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vacations/team?from=2026-03-01&to=2026-03-31", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("pending requires manager", func(t *testing.T) {
		svc := &fakeVacationService{
			teamPendingFn: func(context.Context, *domain.User) ([]vacation.VacationResponse, error) {
				return nil, apperror.FromOutcome(outcome.Failure("manager role required", outcome.CodeManagerRoleRequired))
			},
		}

		w := httptest.NewRecorder()
		newVacationRouter(svc, actor, nil).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vacations/team/pending", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

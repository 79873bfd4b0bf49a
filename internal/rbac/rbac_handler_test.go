package rbac

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-vacation/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct {
	enforceErr error
	lastReq    domain.EnforceRequest
}

func (m *mockService) LoadDefaultPolicy() error { return nil }

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	m.lastReq = req
	if m.enforceErr != nil {
		return false, m.enforceErr
	}
	return req.Role == domain.RoleManager, nil
}

func (m *mockService) PermissionsForRole(role string) ([]domain.PermissionResponse, error) {
	return []domain.PermissionResponse{{Role: role, Resource: ResourceVacation, Action: ActionRead}}, nil
}

type envelope struct {
	Ok   bool                   `json:"ok"`
	Data domain.EnforceResponse `json:"data"`
}

func newRouter(h *Handler, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("role", role)
		c.Next()
	})
	router.POST("/rbac/enforce", h.Enforce)
	router.GET("/rbac/permissions", h.MyPermissions)
	return router
}

func doEnforce(router *gin.Engine, body any) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Enforce(t *testing.T) {
	t.Run("uses caller role", func(t *testing.T) {
		svc := &mockService{}
		w := doEnforce(newRouter(NewHandler(svc), domain.RoleManager), map[string]string{"resource": "vacation", "action": "approve"})

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.True(t, env.Data.Allowed)
		assert.Equal(t, "user-1", svc.lastReq.Subject)
		assert.Equal(t, domain.RoleManager, svc.lastReq.Role)
	})

	t.Run("validation error", func(t *testing.T) {
		w := doEnforce(newRouter(NewHandler(&mockService{}), domain.RoleEmployee), map[string]string{"resource": "vacation"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing role", func(t *testing.T) {
		w := doEnforce(newRouter(NewHandler(&mockService{}), ""), map[string]string{"resource": "vacation", "action": "read"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("service error hidden", func(t *testing.T) {
		w := doEnforce(newRouter(NewHandler(&mockService{enforceErr: errors.New("casbin down")}), domain.RoleEmployee),
			map[string]string{"resource": "vacation", "action": "read"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "casbin down")
	})
}

func TestHandler_MyPermissions(t *testing.T) {
	router := newRouter(NewHandler(&mockService{}), domain.RoleEmployee)
	req, _ := http.NewRequest(http.MethodGet, "/rbac/permissions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resource":"vacation"`)
}

func TestRegisterRoutes_RolePermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newAPI := func(role string) *gin.Engine {
		router := gin.New()
		setRole := func(c *gin.Context) {
			c.Set("user_id", "user-1")
			c.Set("role", role)
			c.Next()
		}
		RegisterRoutes(router.Group("/api/v1"), NewHandler(&mockService{}), setRole)
		return router
	}

	tests := []struct {
		name   string
		role   string
		target string
		status int
	}{
		{"manager reads employee role", domain.RoleManager, domain.RoleEmployee, http.StatusOK},
		{"employee is rejected", domain.RoleEmployee, domain.RoleEmployee, http.StatusForbidden},
		{"unknown role", domain.RoleManager, "auditor", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/api/v1/rbac/roles/"+tt.target+"/permissions", nil)
			w := httptest.NewRecorder()
			newAPI(tt.role).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"role":"employee"`)
			}
		})
	}
}

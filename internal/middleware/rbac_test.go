package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/service"
	memorystore "github.com/skilltrack/tms-api/internal/store/memory"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := memorystore.New()
	require.NoError(t, err)
	authSvc := service.NewAuthService(st, validator.New(), zap.NewNop(), service.AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: time.Hour,
	})

	r := gin.New()
	authed := r.Group("")
	authed.Use(JWT(authSvc))
	authed.GET("/any", func(c *gin.Context) { c.Status(http.StatusOK) })
	authed.GET("/admin-only", RequireRoles(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	authed.GET("/payments", RequireRoles(models.RoleAdmin, models.RoleCashier), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, authSvc
}

func loginToken(t *testing.T, authSvc *service.AuthService, username, password string) string {
	t.Helper()
	res, err := authSvc.Login(context.Background(), models.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	return res.AccessToken
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/admin-only", "").Code)
}

func TestMalformedHeaderIsUnauthorized(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCashierForbiddenOnAdminRoute(t *testing.T) {
	r, authSvc := newTestRouter(t)
	token := loginToken(t, authSvc, "cashier", "cashier123")

	// Authenticated but wrong role: forbidden, not unauthorized.
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin-only", token).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/payments", token).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/any", token).Code)
}

func TestOfficerForbiddenOnPayments(t *testing.T) {
	r, authSvc := newTestRouter(t)
	token := loginToken(t, authSvc, "officer", "officer123")

	assert.Equal(t, http.StatusForbidden, doRequest(r, "/payments", token).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/any", token).Code)
}

func TestAdminAllowedEverywhere(t *testing.T) {
	r, authSvc := newTestRouter(t)
	token := loginToken(t, authSvc, "admin", "admin123")

	assert.Equal(t, http.StatusOK, doRequest(r, "/any", token).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/admin-only", token).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/payments", token).Code)
}

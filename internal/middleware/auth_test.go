package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/auth"
	"atelier-backend/internal/config"
	"atelier-backend/internal/middleware"
	"atelier-backend/internal/models"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func testConfig() *config.Config {
	return &config.Config{JWTSecret: testSecret}
}

func issueToken(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := auth.IssueToken(testSecret, time.Hour, models.User{
		ID:    "user-123",
		Email: "someone@atelier.local",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func newProtectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/test")
	group.Use(middleware.Authenticate(testConfig()))
	group.Use(extra...)
	group.GET("", func(c *gin.Context) {
		claims, _ := middleware.Principal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return router
}

func TestAuthenticateNoToken(t *testing.T) {
	router := newProtectedRouter()

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	router := newProtectedRouter()

	for _, header := range []string{"garbage", "Basic abc", "Bearer", "Bearer  "} {
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	router := newProtectedRouter()

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	router := newProtectedRouter()

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleFlorist))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	router := newProtectedRouter(middleware.RequireRoles(models.RoleAdmin, models.RoleStudioCurator))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleStudioCurator))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRejectsUnlistedRole(t *testing.T) {
	router := newProtectedRouter(middleware.RequireRoles(models.RoleAdmin))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleFlorist))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminIsNotImplied(t *testing.T) {
	// A route listing only non-admin roles refuses Admin too; the table is
	// flat, not hierarchical.
	router := newProtectedRouter(middleware.RequireRoles(models.RoleFlorist))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

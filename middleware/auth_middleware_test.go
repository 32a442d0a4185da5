package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/middleware"
	"github.com/kelechi/skylinkbackend/models"
	"github.com/kelechi/skylinkbackend/utils"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
	admin.GET("/subscribers", func(c *gin.Context) {
		sess := middleware.SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": sess.Email})
	})

	users := admin.Group("/users")
	users.Use(middleware.RequireRoles(models.RoleAdmin))
	users.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter()

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(t, r, "/admin/subscribers", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"access denied"}`, w.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(t, r, "/admin/subscribers", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "other-secret")
		token, err := utils.GenerateAccessToken("u1", "ada@example.com", models.RoleAdmin, utils.AccessTTL())
		require.NoError(t, err)
		t.Setenv("JWT_SECRET", "test-secret")

		w := doRequest(t, r, "/admin/subscribers", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token reaches handler with session", func(t *testing.T) {
		token, err := utils.GenerateAccessToken("u1", "ada@example.com", models.RoleStaff, utils.AccessTTL())
		require.NoError(t, err)

		w := doRequest(t, r, "/admin/subscribers", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"email":"ada@example.com"}`, w.Body.String())
	})
}

func TestRequireRoles(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter()

	staffToken, err := utils.GenerateAccessToken("u1", "staff@example.com", models.RoleStaff, utils.AccessTTL())
	require.NoError(t, err)
	adminToken, err := utils.GenerateAccessToken("u2", "admin@example.com", models.RoleAdmin, utils.AccessTTL())
	require.NoError(t, err)

	t.Run("staff can reach general routes", func(t *testing.T) {
		w := doRequest(t, r, "/admin/subscribers", staffToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("staff is forbidden from user management", func(t *testing.T) {
		w := doRequest(t, r, "/admin/users", staffToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"access denied"}`, w.Body.String())
	})

	t.Run("admin can reach user management", func(t *testing.T) {
		w := doRequest(t, r, "/admin/users", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelechi/skylinkbackend/models"
	"github.com/kelechi/skylinkbackend/utils"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, utils.CheckPassword(hash, "correct horse battery"))
	assert.Error(t, utils.CheckPassword(hash, "wrong password"))
}

func TestAccessTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateAccessToken("user-1", "ada@example.com", models.RoleAdmin, utils.AccessTTL())
	require.NoError(t, err)

	claims, err := utils.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)

	_, err = utils.ValidateToken(token, "another-secret")
	assert.Error(t, err)
}

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Starlink Standard Kit": "starlink-standard-kit",
		"  Gen 3 Router!  ":     "gen-3-router",
		"Café Résidentiel":      "cafe-residentiel",
		"UPPER_case--mix":       "upper-case-mix",
	}
	for in, want := range cases {
		assert.Equal(t, want, utils.GenerateSlug(in), "input %q", in)
	}
}

func TestSetRefreshCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	utils.SetRefreshCookie(c, "rotated-token")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, "refreshToken", ck.Name)
	assert.Equal(t, "rotated-token", ck.Value)
	assert.Equal(t, "/auth", ck.Path)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
	assert.Positive(t, ck.MaxAge)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 20, utils.ParseIntDefault("", 20))
	assert.Equal(t, 20, utils.ParseIntDefault("abc", 20))
	assert.Equal(t, 7, utils.ParseIntDefault("7", 20))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boothreserve/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := JWTAuthWithConfig(testConfig())

	r.GET("/me", auth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c), "admin": IsAdmin(c)})
	})
	r.GET("/admin", auth, RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/vendors", auth, RequireRoles(RoleVendor, RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustToken(t *testing.T, secret, userID, role string, ttl time.Duration) string {
	t.Helper()
	token, err := IssueAccessToken(secret, userID, userID+"@example.com", role, ttl, time.Now())
	require.NoError(t, err)
	return token
}

func TestIssueAndParseAccessToken(t *testing.T) {
	token := mustToken(t, testSecret, "vendor-1", RoleVendor, time.Hour)

	claims, err := ParseAccessToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "vendor-1", claims.UserID)
	assert.Equal(t, RoleVendor, claims.Role)
	assert.Equal(t, "boothreserve", claims.Issuer)

	_, err = ParseAccessToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := mustToken(t, testSecret, "vendor-1", RoleVendor, -time.Minute)
	_, err = ParseAccessToken(testSecret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuth(t *testing.T) {
	r := setupRouter()

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", mustToken(t, "wrong", "v", RoleVendor, time.Hour)).Code)

	w := get(r, "/me", mustToken(t, testSecret, "vendor-1", RoleVendor, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"vendor-1","admin":false}`, w.Body.String())
}

func TestJWTAuth_RejectsNonBearerScheme(t *testing.T) {
	r := setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic "+mustToken(t, testSecret, "v", RoleVendor, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	r := setupRouter()
	vendor := mustToken(t, testSecret, "vendor-1", RoleVendor, time.Hour)
	admin := mustToken(t, testSecret, "admin-1", RoleAdmin, time.Hour)
	guest := mustToken(t, testSecret, "guest", "GUEST", time.Hour)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", vendor).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", admin).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/vendors", vendor).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/vendors", admin).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/vendors", guest).Code)
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", "").Code)
}

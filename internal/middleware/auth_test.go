// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letmemugyou/backend/internal/utils"
)

func newAdminTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin/ping", AdminRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestAdminRequiredRejectsMissingHeader(t *testing.T) {
	r := newAdminTestRouter()

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequiredRejectsMalformedHeader(t *testing.T) {
	r := newAdminTestRouter()

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequiredRejectsBadToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	r := newAdminTestRouter()

	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequiredAcceptsValidToken(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	token, err := utils.GenerateAdminToken(1)
	require.NoError(t, err)

	r := newAdminTestRouter()
	req, _ := http.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

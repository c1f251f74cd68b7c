// internal/middleware/session_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CartSession(false))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("cart_session_id"))
	})
	return r
}

func TestCartSessionMintsCookie(t *testing.T) {
	r := newSessionTestRouter()

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "cart_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "cart_session cookie must be set")
	assert.True(t, cookie.HttpOnly)

	_, err := uuid.Parse(cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, cookie.Value, w.Body.String())
}

func TestCartSessionReusesCookie(t *testing.T) {
	r := newSessionTestRouter()
	sessionID := uuid.New().String()

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: sessionID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, sessionID, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "no new cookie when a valid one exists")
}

func TestCartSessionReplacesTamperedCookie(t *testing.T) {
	r := newSessionTestRouter()

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "not-a-uuid"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "not-a-uuid", w.Body.String())
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

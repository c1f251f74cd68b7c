// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartSessionCookie = "cart_session"
	cartSessionKey    = "cart_session_id"
	cartSessionMaxAge = 60 * 60 * 24 * 30 // 30 days
)

// CartSession assigns every visitor an opaque cart session ID, minted on
// first contact and carried in a cookie thereafter. Handlers read it via
// utils.GetCartSessionID.
func CartSession(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cartSessionCookie)
		if _, parseErr := uuid.Parse(sessionID); err != nil || parseErr != nil {
			// Missing or tampered cookies get replaced, not rejected.
			sessionID = uuid.New().String()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cartSessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   cartSessionMaxAge,
				HttpOnly: true,
				Secure:   secureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(cartSessionKey, sessionID)
		c.Next()
	}
}

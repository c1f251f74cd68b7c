// internal/handlers/auth.go
package handlers

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/letmemugyou/backend/internal/config"
	"github.com/letmemugyou/backend/internal/utils"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

// POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if !h.passwordMatches(req.Password) {
		logrus.WithField("ip", c.ClientIP()).Warn("Failed admin login attempt")
		utils.UnauthorizedResponse(c, "Invalid password")
		return
	}

	token, err := utils.GenerateAdminToken(h.config.Admin.SessionTTL)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to issue session token")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token":      token,
		"expires_in": h.config.Admin.SessionTTL * 3600,
	})
}

func (h *AuthHandler) passwordMatches(password string) bool {
	if h.config.Admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword(
			[]byte(h.config.Admin.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare(
		[]byte(h.config.Admin.Password), []byte(password)) == 1
}

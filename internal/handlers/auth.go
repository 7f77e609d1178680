// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSignedIn(c, authResponse)
}

// POST /auth/demo
func (h *AuthHandler) DemoLogin(c *gin.Context) {
	var req services.DemoLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.LoginAsDemo(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSignedIn(c, authResponse)
}

// POST /auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req services.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.AdminLogin(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSignedIn(c, authResponse)
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.authService.Logout(); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

func (h *AuthHandler) respondSignedIn(c *gin.Context, authResponse *services.AuthResponse) {
	lang := utils.GetLangFromContext(c)

	message := i18n.T(lang, i18n.KeyAuthWelcome, authResponse.User.Profile().Name)
	if authResponse.User.Role() == models.RoleAdmin {
		message = i18n.T(lang, i18n.KeyAuthWelcomeAdmin)
	}

	utils.SuccessResponse(c, gin.H{
		"message":    message,
		"user":       authResponse.User,
		"token":      authResponse.AccessToken,
		"token_type": authResponse.TokenType,
		"expires_in": authResponse.ExpiresIn,
	})
}

// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/middleware"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/utils"
)

type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Avatar          *string `json:"avatar,omitempty" validate:"omitempty,url"`
	ShopName        *string `json:"shop_name,omitempty" validate:"omitempty,min=1,max=100"`
	ShopDescription *string `json:"shop_description,omitempty" validate:"omitempty,max=500"`
}

type UserHandler struct {
	accountService *services.AccountService
}

func NewUserHandler(accountService *services.AccountService) *UserHandler {
	return &UserHandler{
		accountService: accountService,
	}
}

// GET /auth/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"user": id})
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.accountService.UpdateProfile(models.IdentityUpdate{
		Name:            req.Name,
		Avatar:          req.Avatar,
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    id,
	})
}

// DELETE /users/account
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.accountService.DeleteAccount(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserAccountDeleted),
	})
}

// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/services"
	"github.com/javajoker/marketplace/internal/store"
	"github.com/javajoker/marketplace/internal/utils"
)

// respondError maps service and store errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))

	case errors.Is(err, services.ErrNotSignedIn):
		utils.UnauthorizedResponse(c, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))

	case errors.Is(err, store.ErrAdminLoginRequired):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthAdminPortal))
	case errors.Is(err, services.ErrNotOwner):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyProductNotOwner))
	case errors.Is(err, services.ErrShopperRequired), errors.Is(err, services.ErrTraderRequired):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthRoleDenied))

	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.NotFoundResponse(c, "order")
	case errors.Is(err, services.ErrTraderNotFound):
		utils.NotFoundResponse(c, "trader")

	case errors.Is(err, services.ErrOutOfStock):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductOutOfStock), nil)
	case errors.Is(err, services.ErrEmptyCart):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
	case errors.Is(err, store.ErrInvalidRating):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRating), nil)
	case errors.Is(err, services.ErrEmptyComment):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "content"), nil)
	case errors.Is(err, store.ErrInvalidOrderStatus):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), nil)
	case errors.Is(err, store.ErrUnknownRole):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "role"), nil)

	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON decodes and validates a request body. It writes the error
// response itself and reports whether the handler should continue.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

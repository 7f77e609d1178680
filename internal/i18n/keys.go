// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthSessionEnded       = "auth.session_ended"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthAdminPortal        = "auth.admin_portal"
	KeyAuthWelcome            = "auth.welcome"
	KeyAuthWelcomeAdmin       = "auth.welcome_admin"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRoleDenied         = "auth.role_denied"

	// Profile
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserAccountDeleted = "user.account_deleted"
	KeyUserNotFound       = "user.not_found"

	// Cart
	KeyCartAdded   = "cart.added"
	KeyCartRemoved = "cart.removed"
	KeyCartUpdated = "cart.updated"
	KeyCartCleared = "cart.cleared"
	KeyCartEmpty   = "cart.empty"

	// Orders
	KeyOrderPlaced        = "order.placed"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderStatusUpdated = "order.status_updated"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductOutOfStock = "product.out_of_stock"
	KeyProductNotOwner   = "product.not_owner"
	KeyProductRated      = "product.rated"
	KeyProductCommented  = "product.commented"
	KeyLinkCopied        = "product.link_copied"

	// Traders
	KeyTraderNotFound   = "trader.not_found"
	KeyTraderVerified   = "trader.verified"
	KeyTraderUnverified = "trader.unverified"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRating   = "validation.rating"

	// Rate limiting
	KeyRateLimited = "rate.limited"
)

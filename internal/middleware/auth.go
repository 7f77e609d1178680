// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketplace/internal/i18n"
	"github.com/javajoker/marketplace/internal/models"
	"github.com/javajoker/marketplace/internal/utils"
)

// IdentityLookup resolves the session identity a token subject refers to.
type IdentityLookup interface {
	Current(userID string) (models.Identity, bool)
}

// SessionRequired accepts a bearer token only while its subject is still
// the current session identity. A logout invalidates every earlier token.
func SessionRequired(sessions IdentityLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		userID, id, key := resolveSession(authHeader, sessions)
		if key != "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, key))
			c.Abort()
			return
		}

		setIdentity(c, userID, id)
		c.Next()
	}
}

// SessionOptional attaches the identity when a valid session token is
// present and lets anonymous requests through unchanged.
func SessionOptional(sessions IdentityLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if userID, id, key := resolveSession(authHeader, sessions); key == "" {
				setIdentity(c, userID, id)
			}
		}
		c.Next()
	}
}

// resolveSession returns the i18n key of the failure, or "" on success.
func resolveSession(authHeader string, sessions IdentityLookup) (string, models.Identity, string) {
	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", nil, i18n.KeyAuthInvalidToken
	}

	claims, err := utils.ValidateJWT(parts[1])
	if err != nil {
		if utils.IsExpired(err) {
			return "", nil, i18n.KeyAuthTokenExpired
		}
		return "", nil, i18n.KeyAuthInvalidToken
	}

	id, ok := sessions.Current(claims.UserID)
	if !ok {
		return "", nil, i18n.KeyAuthSessionEnded
	}
	return claims.UserID, id, ""
}

func setIdentity(c *gin.Context, userID string, id models.Identity) {
	c.Set("user_id", userID)
	c.Set("role", string(id.Role()))
	c.Set("identity", id)
}

// RoleRequired must run after SessionRequired.
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		role, _ := utils.GetRoleFromContext(c)
		for _, r := range roles {
			if role == string(r) {
				c.Next()
				return
			}
		}

		message := i18n.T(lang, i18n.KeyAuthRoleDenied)
		if len(roles) == 1 && roles[0] == models.RoleAdmin {
			message = i18n.T(lang, i18n.KeyAdminAccessDenied)
		}
		utils.ForbiddenResponse(c, message)
		c.Abort()
	}
}

func AdminRequired() gin.HandlerFunc {
	return RoleRequired(models.RoleAdmin)
}

// GetIdentity returns the identity SessionRequired stored on the context.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		return nil, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

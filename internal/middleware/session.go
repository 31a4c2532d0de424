package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pkdsmart/feedback-portal/internal/models"
	"github.com/pkdsmart/feedback-portal/pkg/render"
)

// ContextUserKey is the gin context key storing the session claims.
const ContextUserKey = "currentUser"

// LoginPath is where unauthenticated or wrong-role requests get sent.
const LoginPath = "/login"

type sessionValidator interface {
	ValidateSession(token string) (*models.SessionClaims, error)
}

// Session attaches validated session claims to the request context when the
// session cookie is present and valid. It never blocks; RequireRole does.
func Session(auth sessionValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := auth.ValidateSession(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// RequireRole gates a page behind an authenticated session with the given
// role. Anything else is redirected to the login page with no further work.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Role != role {
			render.Redirect(c, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the session claims stored by Session, or nil.
func ClaimsFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

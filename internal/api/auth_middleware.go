package api

import (
	"net/http"

	"aqualeaf/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const currentClaimsContextKey = "current-claims"

// setSessionCookie issues the bearer session as an HTTP-only cookie.
func (h *HTTPHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, sessionCookiePath, "", false, true)
}

// clearSessionCookie expires the session cookie client-side.
func (h *HTTPHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, sessionCookiePath, "", false, true)
}

// AuthMiddleware validates the session cookie. Malformed, mis-signed and
// expired tokens are rejected uniformly.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "Unauthorized",
			})
			return
		}

		claims, err := h.sessions.ParseToken(token)
		if err != nil {
			logrus.WithError(err).Warn("failed to parse session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeSessionExpired,
				Message: "Invalid token",
			})
			return
		}

		c.Set(currentClaimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin guards administrator-only surfaces.
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil || claims.Role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "administrator privileges required",
			})
			return
		}
		c.Next()
	}
}

// RequireFarm guards farm-operator surfaces.
func (h *HTTPHandler) RequireFarm() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil || claims.Role != auth.RoleFarm {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "farm account required",
			})
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the authenticated session claims, if any.
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(currentClaimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

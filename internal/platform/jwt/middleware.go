package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key carrying the authenticated user's ID.
const ContextUserID = "userID"

// CookieName is the name of the session cookie.
const CookieName = "token"

// AuthRequired returns a Gin middleware function that resolves the
// session token from the cookie (or an Authorization header as a
// fallback) and restricts access to authenticated users only.
func AuthRequired(issuer Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Prefer the session cookie
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			// 2. Fall back to a bearer token
			auth := c.GetHeader("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized, please login"})
				return
			}
			tokenStr = strings.TrimPrefix(auth, "Bearer ")
		}

		// 3. Verify signature and expiry
		userID, err := issuer.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized, please login"})
			return
		}

		// 4. Expose the resolved user ID to handlers
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-chatline/internal/pkg/auth"
)

const identityContextKey = "identity"

// RequireAuth verifies the bearer token and stores the caller identity in the
// gin context. Websocket clients cannot set headers on the upgrade request, so
// an access_token query parameter is accepted as a fallback.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimPrefix(h, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.Query("access_token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		identity, err := issuer.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity set by RequireAuth,
// or nil if the request was not authenticated.
func IdentityFromContext(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}

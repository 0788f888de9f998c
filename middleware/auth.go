package middleware

import (
	"net/http"
	"strings"

	"spiritualgifts/services"

	"github.com/gin-gonic/gin"
)

const (
	userKey   = "user"
	userIDKey = "user_id"
)

// TokenVerifier turns a raw bearer token into the identity it asserts.
type TokenVerifier interface {
	Verify(raw string) (*services.Identity, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's identity under "user" and its id under "user_id".
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userKey, *identity)
		c.Set(userIDKey, identity.ID)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		if !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (services.Identity, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := value.(services.Identity)
	return identity, ok
}

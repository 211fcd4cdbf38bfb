package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/actionhub-org/HappyFox-practice/pkg/identity"

	"github.com/gin-gonic/gin"
)

// TokenIntrospector verifies a bearer token with the identity provider
type TokenIntrospector interface {
	Introspect(ctx context.Context, token string) (*identity.Identity, error)
}

const (
	// ContextUserEmail is the gin context key the verified caller email
	// is stored under.
	ContextUserEmail = "userEmail"
	// ContextUserID is the gin context key for the external identity id.
	ContextUserID = "userID"
)

// RequireAuth guards a route group with bearer-token introspection. A nil
// introspector disables the guard, which is how test and dev setups run.
func RequireAuth(introspector TokenIntrospector) gin.HandlerFunc {
	return func(c *gin.Context) {
		if introspector == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		ident, err := introspector.Introspect(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserEmail, strings.ToLower(ident.Email))
		c.Set(ContextUserID, ident.ID)
		c.Next()
	}
}

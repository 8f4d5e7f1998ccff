package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/httpx"
)

const identityKey = "identity"

// RequireAuth resolves the bearer credential through the verifier chain and
// stores the identity on the context.
func RequireAuth(chain *auth.Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpx.Fail(c, httpx.Unauthorized("Unauthorized: No token provided"))
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		ident, err := chain.Resolve(c.Request.Context(), token)
		if err != nil {
			httpx.Fail(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := Identity(c)
		if ident == nil {
			httpx.Fail(c, httpx.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		if !ident.IsAdmin {
			httpx.Fail(c, httpx.Forbidden("Admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity returns the caller resolved by RequireAuth, or nil.
func Identity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*auth.Identity)
	return ident
}

// SetIdentity injects an identity directly, used by tests to skip token
// verification.
func SetIdentity(ident *auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, ident)
		c.Next()
	}
}

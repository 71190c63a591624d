package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/models"
)

const identityKey = "identity"

// Authenticator turns a bearer token into the caller's current identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

func bearer(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c)
		if raw == "" {
			response.Error(c, models.NewUnauthorized("Not authorized, no token"))
			return
		}
		id, err := authn.Authenticate(c.Request.Context(), raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a token is sent. A token that is
// sent but invalid is still rejected.
func OptionalAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearer(c); raw != "" {
			id, err := authn.Authenticate(c.Request.Context(), raw)
			if err != nil {
				response.Error(c, err)
				return
			}
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok {
			response.Error(c, models.NewUnauthorized("Not authorized"))
			return
		}
		if !id.IsAdmin() {
			response.Error(c, models.NewForbidden("Not authorized as an admin"))
			return
		}
		c.Next()
	}
}

func Identity(c *gin.Context) (*models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*models.Identity)
	return id, ok
}

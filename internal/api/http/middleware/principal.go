package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ratehub/ratehub-server/internal/model"
)

// principalKey is the gin context key holding the authenticated
// principal for the current request.
const principalKey = "principal"

// SetPrincipal stores the authenticated principal on the request
// context.
func SetPrincipal(c *gin.Context, principal model.Principal) {
	c.Set(principalKey, principal)
}

// GetPrincipal retrieves the authenticated principal from the request
// context.
func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := v.(model.Principal)
	return principal, ok
}

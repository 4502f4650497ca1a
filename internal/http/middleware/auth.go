// README: Bearer-token auth middleware; attaches the caller principal to the request.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tiffin/internal/infra"
	"tiffin/internal/types"
)

const (
	ctxUIDKey  = "auth.uid"
	ctxRoleKey = "auth.role"
)

// Auth verifies the Authorization bearer token and stores the caller's UID
// and role claim in the request context. Requests without a valid token are
// rejected; role defaults to "user" when the claim is absent or unknown.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUIDKey, token.UID)
		c.Set(ctxRoleKey, roleFromClaims(token.Claims))
		c.Next()
	}
}

// RequireRole gates a route to the given roles; it runs after Auth.
func RequireRole(roles ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerRole(c)
		for _, r := range roles {
			if caller == string(r) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

func CallerUID(c *gin.Context) string {
	return c.GetString(ctxUIDKey)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(ctxRoleKey)
}

// Principal builds the domain-facing caller identity.
func Principal(c *gin.Context) types.Principal {
	return types.Principal{
		UID:  types.ID(CallerUID(c)),
		Role: types.Role(CallerRole(c)),
	}
}

func roleFromClaims(claims map[string]interface{}) string {
	role, _ := claims["role"].(string)
	switch types.Role(role) {
	case types.RoleHotelAdmin, types.RoleAdmin:
		return role
	}
	return string(types.RoleUser)
}

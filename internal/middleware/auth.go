package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atelier-backend/internal/auth"
	"atelier-backend/internal/config"
	"atelier-backend/internal/models"
)

const claimsKey = "auth_claims"

// Authenticate validates the bearer token and stores the principal's claims
// in the gin context. Requests without a valid token are rejected with 401.
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthenticated(c, "authorization header must be in format 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			abortUnauthenticated(c, "empty token")
			return
		}

		claims, err := auth.ParseToken(cfg.JWTSecret, tokenString)
		if err != nil {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles gates a route on an explicit allow-set. The table is flat:
// every role that may perform the operation is listed at the route, Admin
// included.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		claims, ok := Principal(c)
		if !ok {
			abortUnauthenticated(c, "no authenticated principal")
			return
		}
		if !allowed[claims.Role] {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "forbidden",
				Message: "role is not permitted to perform this operation",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated claims set by Authenticate.
func Principal(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthenticated",
		Message: msg,
	})
	c.Abort()
}

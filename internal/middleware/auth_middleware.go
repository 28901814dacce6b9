package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nookcoder/library-console/internal/auth"
)

const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRoles  = "roles"
)

// AuthMiddleware rejects requests without a valid bearer token and exposes
// the token's claims on the gin context.
func AuthMiddleware(jwtService auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expect format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Subject)
		c.Set(ContextRoles, claims.Roles)

		c.Next()
	}
}

// RequireRole lets the request through when the authenticated caller holds
// any of roles. It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held := c.GetStringSlice(ContextRoles)
		for _, role := range roles {
			if slices.Contains(held, role) {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Access denied")
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"timestamp": time.Now().UTC(),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
		"path":      c.Request.URL.Path,
	})
}

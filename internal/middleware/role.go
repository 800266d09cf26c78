package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles.
// It must run after JWTAuth.
func RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetString("role")
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		role, ok := domain.ParseRole(raw)
		if !ok || !slices.Contains(allowed, role) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// StaffOnly admits owners and technicians.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner, domain.RoleTechnician)
}

func OwnerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleOwner)
}

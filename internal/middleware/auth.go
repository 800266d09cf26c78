package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hvacops/internal/pkg/jwt"
	"hvacops/internal/pkg/response"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// JWTAuth accepts the session cookie or an Authorization bearer header and
// stores user_id, role and email on the context.
func JWTAuth(tokens TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code := extractToken(c, cookieName)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, code, "Authentication required")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) (string, string) {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", "INVALID_AUTH_FORMAT"
		}
		return strings.TrimSpace(token), ""
	}

	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v, ""
		}
	}
	return "", "AUTH_MISSING"
}

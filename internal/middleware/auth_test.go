package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(t *testing.T, jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(JWTAuth(jwtService, "session"))
	router.Use(extra...)
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, _ := jwtService.GenerateToken(42, "TECHNICIAN", "tech@hvac.test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	protectedRouter(t, jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "TECHNICIAN")
}

func TestJWTAuth_Cookie(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	token, _ := jwtService.GenerateToken(7, "OWNER", "owner@hvac.test")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	protectedRouter(t, jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	foreign, _ := jwt.New("other-secret", time.Hour).GenerateToken(1, "OWNER", "x@y.z")

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"missing", "", "AUTH_MISSING"},
		{"wrong scheme", "Basic dGVzdA==", "INVALID_AUTH_FORMAT"},
		{"garbage", "Bearer invalid-jwt-here", "INVALID_TOKEN"},
		{"foreign signature", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JWTAuth(jwtService, "session"))
			router.GET("/protected", func(c *gin.Context) {
				t.Fatal("handler should not be reached")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)

	cases := []struct {
		role   domain.Role
		guard  gin.HandlerFunc
		status int
	}{
		{domain.RoleOwner, StaffOnly(), http.StatusOK},
		{domain.RoleTechnician, StaffOnly(), http.StatusOK},
		{domain.RoleCustomer, StaffOnly(), http.StatusForbidden},
		{domain.RoleOwner, OwnerOnly(), http.StatusOK},
		{domain.RoleTechnician, OwnerOnly(), http.StatusForbidden},
	}
	for _, tc := range cases {
		token, _ := jwtService.GenerateToken(1, string(tc.role), "u@hvac.test")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		protectedRouter(t, jwtService, tc.guard).ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, "role %s", tc.role)
	}
}

func TestRequireRole_NoRoleIsUnauthorized(t *testing.T) {
	router := gin.New()
	router.GET("/x", RequireRole(domain.RoleOwner), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

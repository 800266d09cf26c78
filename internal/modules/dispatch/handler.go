package dispatch

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/jwt"
	"hvacops/internal/pkg/response"
)

type tokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type Handler struct {
	hub        *Hub
	tokens     tokenValidator
	cookieName string
	upgrader   websocket.Upgrader
}

// NewHandler allows upgrades from allowedOrigins, from "*" for any origin,
// and from clients that send no Origin header.
func NewHandler(hub *Hub, tokens tokenValidator, cookieName string, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &Handler{
		hub:        hub,
		tokens:     tokens,
		cookieName: cookieName,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed["*"] {
					return true
				}
				if allowed[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/dispatch", h.ServeWS)
}

// ServeWS handles GET /ws/dispatch?token=JWT. Browsers cannot set headers on
// websocket upgrades, so the token comes from the query or the session cookie.
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token, _ = c.Cookie(h.cookieName)
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok || (role != domain.RoleOwner && role != domain.RoleTechnician) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("dispatch: upgrade failed", "err", err)
		return
	}

	h.hub.serve(conn, claims.UserID)
}

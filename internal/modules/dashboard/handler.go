package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvacops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(staff *gin.RouterGroup) {
	dash := staff.Group("/dashboard")
	{
		dash.GET("/metrics", h.Metrics)
		dash.GET("/summary", h.Summary)
	}
}

// Metrics handles GET /api/v1/dashboard/metrics?days=
func (h *Handler) Metrics(c *gin.Context) {
	rows, err := h.service.Metrics(c.Request.Context(), c.Query("days"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

// Summary handles GET /api/v1/dashboard/summary
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

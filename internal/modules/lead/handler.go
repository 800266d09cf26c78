package lead

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

func (h *Handler) RegisterRoutes(staff *gin.RouterGroup, canWrite gin.HandlerFunc) {
	leads := staff.Group("/leads")
	{
		leads.GET("", h.ListLeads)
		leads.GET("/stats", h.GetStats)
		leads.POST("", canWrite, h.CreateLead)
	}
}

// CreateLead handles POST /api/v1/leads
func (h *Handler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}

	lead, err := h.service.CreateLead(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, FromLead(lead))
}

// ListLeads handles GET /api/v1/leads?status=&source=&limit=
func (h *Handler) ListLeads(c *gin.Context) {
	leads, err := h.service.ListLeads(c.Request.Context(), ListParams{
		Status: c.Query("status"),
		Source: c.Query("source"),
		Limit:  c.Query("limit"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, FromLeads(leads))
}

// GetStats handles GET /api/v1/leads/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

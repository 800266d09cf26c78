package servicerequest

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

// RegisterPublicRoutes mounts the contact form behind the given limiter.
func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup, limiter gin.HandlerFunc) {
	public.POST("/service-request", limiter, h.Submit)
}

func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	staff.GET("/service-requests", h.ListRecent)
}

// Submit handles POST /api/v1/service-request (public)
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, SubmittedView{
		Message:          submittedMessage,
		ServiceRequestID: res.Reference,
	})
}

// ListRecent handles GET /api/v1/service-requests?limit=
func (h *Handler) ListRecent(c *gin.Context) {
	rows, err := h.service.ListRecent(c.Request.Context(), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, FromServiceRequests(rows))
}

package customer

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
	staff.GET("/customers", h.ListCustomers)
}

// ListCustomers handles GET /api/v1/customers?limit=
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context(), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, customers)
}

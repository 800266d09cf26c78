package technician

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
	staff.GET("/technicians", h.ListTechnicians)
}

// ListTechnicians handles GET /api/v1/technicians?available=&limit=
func (h *Handler) ListTechnicians(c *gin.Context) {
	techs, err := h.service.ListTechnicians(c.Request.Context(), ListParams{
		Available: c.Query("available"),
		Limit:     c.Query("limit"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, techs)
}

package job

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvacops/internal/pkg/apperr"
	"hvacops/internal/pkg/query"
	"hvacops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts reads on the staff group; writes additionally pass
// through canWrite.
func (h *Handler) RegisterRoutes(staff *gin.RouterGroup, canWrite gin.HandlerFunc) {
	jobs := staff.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/unassigned", h.ListUnassigned)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("", canWrite, h.CreateJob)
	}
}

// CreateJob handles POST /api/v1/jobs
func (h *Handler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidJSON(c)
		return
	}

	job, err := h.service.CreateJob(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, FromJob(job))
}

// ListJobs handles GET /api/v1/jobs?status=&type=&techId=&limit=
func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.service.ListJobs(c.Request.Context(), ListParams{
		Status:       c.Query("status"),
		Type:         c.Query("type"),
		TechnicianID: c.Query("techId"),
		Limit:        c.Query("limit"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, FromJobs(jobs))
}

// ListUnassigned handles GET /api/v1/jobs/unassigned?limit=
func (h *Handler) ListUnassigned(c *gin.Context) {
	jobs, err := h.service.ListUnassigned(c.Request.Context(), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, FromJobs(jobs))
}

func (h *Handler) GetJob(c *gin.Context) {
	id, ok := query.ID(c.Param("id"))
	if !ok {
		response.FromError(c, apperr.NotFound("job", c.Param("id")))
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, FromJob(job))
}

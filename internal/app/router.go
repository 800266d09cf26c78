// Package app wires repositories, services and handlers into the HTTP router.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"hvacops/internal/config"
	"hvacops/internal/middleware"
	"hvacops/internal/modules/auth"
	"hvacops/internal/modules/customer"
	"hvacops/internal/modules/dashboard"
	"hvacops/internal/modules/dispatch"
	"hvacops/internal/modules/job"
	"hvacops/internal/modules/lead"
	"hvacops/internal/modules/servicerequest"
	"hvacops/internal/modules/technician"
	jwtsvc "hvacops/internal/pkg/jwt"
	"hvacops/internal/repository"
)

type App struct {
	Router *gin.Engine
	Hub    *dispatch.Hub
	JWT    *jwtsvc.Service
}

// New builds the full HTTP surface on top of db.
func New(cfg *config.Config, db *gorm.DB) *App {
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := dispatch.NewHub()

	userRepo := repository.NewUserRepository(db, cfg.DBTimeout)
	customerRepo := repository.NewCustomerRepository(db, cfg.DBTimeout)
	technicianRepo := repository.NewTechnicianRepository(db, cfg.DBTimeout)
	jobRepo := repository.NewJobRepository(db, cfg.DBTimeout)
	leadRepo := repository.NewLeadRepository(db, cfg.DBTimeout)
	serviceRequestRepo := repository.NewServiceRequestRepository(db, cfg.DBTimeout)
	metricRepo := repository.NewMetricRepository(db, cfg.DBTimeout)

	authHandler := auth.NewHandler(
		auth.NewService(userRepo, j),
		auth.CookieConfig{Name: cfg.CookieName, Secure: cfg.CookieSecure},
	)
	jobHandler := job.NewHandler(job.NewService(jobRepo, customerRepo, userRepo, hub, cfg.CompanyCode))
	leadHandler := lead.NewHandler(lead.NewService(leadRepo, userRepo, hub))
	serviceRequestHandler := servicerequest.NewHandler(servicerequest.NewService(serviceRequestRepo, hub))
	customerHandler := customer.NewHandler(customer.NewService(customerRepo))
	technicianHandler := technician.NewHandler(technician.NewService(technicianRepo))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(metricRepo, jobRepo, leadRepo, technicianRepo))
	dispatchHandler := dispatch.NewHandler(hub, j, cfg.CookieName, cfg.CORSAllowedOrigins)

	limiter := middleware.NewIPRateLimiter(cfg.ServiceRequestRate)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.AccessLog(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	dispatchHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		serviceRequestHandler.RegisterPublicRoutes(v1, limiter.Middleware())

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j, cfg.CookieName))
		authHandler.RegisterProtectedRoutes(protected)

		staff := protected.Group("")
		staff.Use(middleware.StaffOnly())
		{
			canWrite := middleware.OwnerOnly()
			jobHandler.RegisterRoutes(staff, canWrite)
			leadHandler.RegisterRoutes(staff, canWrite)
			serviceRequestHandler.RegisterStaffRoutes(staff)
			customerHandler.RegisterRoutes(staff)
			technicianHandler.RegisterRoutes(staff)
			dashboardHandler.RegisterRoutes(staff)
		}
	}

	return &App{Router: r, Hub: hub, JWT: j}
}

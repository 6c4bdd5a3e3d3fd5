package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"devonxona/internal/config"
	"devonxona/internal/domain"
	"devonxona/internal/handler"
	"devonxona/internal/middleware"
	"devonxona/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	corrH *handler.CorrespondenceHandler,
	attH *handler.AttachmentHandler,
	userH *handler.UserHandler,
	statsH *handler.StatsHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Correspondence routes. Workflow permissions are enforced by the
	// transition executor, not by route-level role gates.
	corr := protected.Group("/correspondences")
	corr.POST("", corrH.Create)
	corr.GET("", corrH.List)
	corr.GET("/:id", corrH.GetByID)
	corr.GET("/:id/actions", corrH.AllowedActions)
	corr.GET("/:id/audit", corrH.AuditTrail)
	corr.POST("/:id/assign-executor", corrH.AssignExecutor)
	corr.POST("/:id/assign-internal", corrH.AssignInternal)
	corr.POST("/:id/start-drafting", corrH.StartDrafting)
	corr.POST("/:id/submit-review", corrH.SubmitForReview)
	corr.POST("/:id/approve", corrH.ApproveReview)
	corr.POST("/:id/reject", corrH.RejectReview)
	corr.POST("/:id/sign", corrH.Sign)
	corr.POST("/:id/dispatch", corrH.Dispatch)

	// Attachments
	corr.POST("/:id/attachments", attH.Upload)
	corr.GET("/:id/attachments", attH.List)
	attachments := protected.Group("/attachments")
	attachments.GET("/:id/download", attH.DownloadURL)
	attachments.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), attH.Delete)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Dashboard and register exports
	protected.GET("/stats/dashboard", statsH.Dashboard)
	reports := protected.Group("/reports")
	reports.GET("/register.csv", reportH.RegisterCSV)
	reports.GET("/register.xlsx", reportH.RegisterXLSX)

	return r
}

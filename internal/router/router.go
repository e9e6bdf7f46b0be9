package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "otpshare/docs"
	"otpshare/internal/domain"
	"otpshare/internal/handler"
	"otpshare/internal/middleware"
	"otpshare/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	OTP      *handler.OTPHandler
	Import   *handler.ImportHandler
	User     *handler.UserHandler
	Settings *handler.SettingsHandler
	Backup   *handler.BackupHandler
	Health   *handler.HealthHandler
}

// Options carries the router's middleware settings.
type Options struct {
	AllowedOrigins []string
	LoginLimiter   *middleware.RateLimiter
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.GET("/parsers/metadata", h.Import.ParserMetadata)

	// Public auth routes
	auth := v1.Group("/auth")
	if opts.LoginLimiter != nil {
		auth.POST("/login", middleware.RateLimit(opts.LoginLimiter), h.Auth.Login)
	} else {
		auth.POST("/login", h.Auth.Login)
	}
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.GET("/check-admin", h.Auth.CheckAdmin)
	auth.POST("/initial-admin", h.Auth.InitialAdmin)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/preferences", h.Auth.UpdatePreferences)
	protected.PUT("/auth/change-password", h.Auth.ChangePassword)

	protected.GET("/otps", h.OTP.Dashboard)
	protected.PUT("/otps/:id/use", h.OTP.MarkUsed)

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.POST("/otp", h.Import.ImportCodes)
	admin.POST("/otp/file", h.Import.ImportFile)
	admin.GET("/otp", h.OTP.List)
	admin.DELETE("/otp", h.OTP.DeleteAll)
	admin.DELETE("/otp/:id", h.OTP.Delete)
	admin.POST("/otp/bulk/delete", h.OTP.BulkDelete)
	admin.POST("/otp/bulk/mark-used", h.OTP.BulkMarkUsed)
	admin.POST("/otp/bulk/mark-unused", h.OTP.BulkMarkUnused)

	admin.POST("/users", h.User.Create)
	admin.GET("/users", h.User.List)
	admin.GET("/users/:id", h.User.GetByID)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Delete)

	admin.GET("/settings", h.Settings.Get)
	admin.PUT("/settings", h.Settings.Update)

	admin.GET("/backup", h.Backup.Download)
	admin.POST("/backup/archive", h.Backup.Archive)

	return r
}

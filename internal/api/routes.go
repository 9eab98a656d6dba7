package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haibh/airisk-dashboard-sub002/internal/auth"
	"github.com/haibh/airisk-dashboard-sub002/internal/database"
	"github.com/haibh/airisk-dashboard-sub002/internal/logger"
	"github.com/haibh/airisk-dashboard-sub002/internal/regwatch"
	"github.com/haibh/airisk-dashboard-sub002/internal/services"
	"github.com/haibh/airisk-dashboard-sub002/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *database.DB, cfg *config.Config, log logger.Logger) {
	svcs := services.NewServices(db.DB, cfg, log)

	// The regulatory feed is optional; without a configured URL the endpoint
	// reports unavailable instead of being absent.
	var regwatchService *regwatch.Service
	if cfg.HasRegulatoryFeed() {
		regwatchService = regwatch.NewService(cfg.RegulatoryFeedURL, log)
	}

	authHandler := NewAuthHandler(svcs.Auth)
	riskHandler := NewRiskHandler(svcs.Risk, svcs.Velocity)
	systemHandler := NewAISystemHandler(svcs.AISystem)
	importHandler := NewImportHandler(svcs.Import, cfg.MaxUploadSize)
	regulatoryHandler := NewRegulatoryHandler(regwatchService)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/refresh", authHandler.RefreshToken)
		public.POST("/auth/logout", authHandler.Logout)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	protected.Use(auth.CSRFMiddleware())
	{
		// Health monitoring
		protected.GET("/health", func(c *gin.Context) {
			if err := db.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
			stats := db.GetStats()
			c.JSON(http.StatusOK, gin.H{
				"status":           "healthy",
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
			})
		})

		// Risk register
		protected.GET("/risks", riskHandler.GetRisks)
		protected.POST("/risks", riskHandler.CreateRisk)
		protected.GET("/risks/:id", riskHandler.GetRisk)
		protected.PUT("/risks/:id", riskHandler.UpdateRisk)
		protected.DELETE("/risks/:id", riskHandler.DeleteRisk)

		// Risk velocity
		protected.GET("/risks/:id/velocity", riskHandler.GetRiskVelocity)
		protected.POST("/risks/velocity", riskHandler.BatchVelocity)

		// AI system inventory
		protected.GET("/ai-systems", systemHandler.GetAISystems)
		protected.POST("/ai-systems", systemHandler.CreateAISystem)
		protected.GET("/ai-systems/:id", systemHandler.GetAISystem)
		protected.PUT("/ai-systems/:id", systemHandler.UpdateAISystem)
		protected.DELETE("/ai-systems/:id", systemHandler.DeleteAISystem)

		// Bulk import
		protected.POST("/import/:entity", importHandler.Import)
		protected.GET("/import/:entity/template", importHandler.Template)

		// Regulatory watch
		protected.GET("/regulatory/updates", regulatoryHandler.GetUpdates)
	}
}

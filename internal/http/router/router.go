package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/propostas-backend/internal/config"
	"github.com/ignatzorin/propostas-backend/internal/http/handlers"
	"github.com/ignatzorin/propostas-backend/internal/http/middleware"
)

func SetupRouter(
	cfg *config.Config,
	tokens middleware.AccessTokenParser,
	healthHandler *handlers.HealthHandler,
	wsHandler *handlers.WSHandler,
	renderHandler *handlers.RenderHandler,
	clientHandler *handlers.ClientHandler,
	catalogHandler *handlers.ServiceCatalogHandler,
	companyHandler *handlers.CompanyHandler,
	proposalHandler *handlers.ProposalHandler,
	proposalTemplateHandler *handlers.ProposalTemplateHandler,
	webhookHandler *handlers.WebhookHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/template-tokens", renderHandler.Tokens)
	api.POST("/webhooks/signatures",
		middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod),
		webhookHandler.Signature,
	)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.POST("/render/preview",
			middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod),
			renderHandler.Preview,
		)

		protected.GET("/company", companyHandler.Get)
		protected.PUT("/company", companyHandler.Save)

		protected.GET("/clients", clientHandler.List)
		protected.POST("/clients", clientHandler.Create)
		protected.GET("/clients/:id", middleware.UUIDValidator("id"), clientHandler.Get)
		protected.PUT("/clients/:id", middleware.UUIDValidator("id"), clientHandler.Update)
		protected.DELETE("/clients/:id", middleware.UUIDValidator("id"), clientHandler.Delete)

		protected.GET("/services", catalogHandler.List)
		protected.POST("/services", catalogHandler.Create)
		protected.GET("/services/:id", middleware.UUIDValidator("id"), catalogHandler.Get)
		protected.PUT("/services/:id", middleware.UUIDValidator("id"), catalogHandler.Update)
		protected.DELETE("/services/:id", middleware.UUIDValidator("id"), catalogHandler.Delete)

		protected.GET("/proposal-templates", proposalTemplateHandler.ListTemplates)
		protected.POST("/proposal-templates", proposalTemplateHandler.CreateTemplate)
		protected.GET("/proposal-templates/:id", middleware.UUIDValidator("id"), proposalTemplateHandler.GetTemplate)
		protected.PUT("/proposal-templates/:id", middleware.UUIDValidator("id"), proposalTemplateHandler.UpdateTemplate)
		protected.DELETE("/proposal-templates/:id", middleware.UUIDValidator("id"), proposalTemplateHandler.DeleteTemplate)

		protected.GET("/proposals", proposalHandler.List)
		protected.POST("/proposals", proposalHandler.Create)
		protected.GET("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Get)
		protected.PUT("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Update)
		protected.PATCH("/proposals/:id/status", middleware.UUIDValidator("id"), proposalHandler.UpdateStatus)
		protected.DELETE("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Delete)
		protected.GET("/proposals/:id/document", middleware.UUIDValidator("id"), proposalHandler.Document)
	}

	return r
}

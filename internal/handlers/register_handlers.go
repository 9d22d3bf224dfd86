package handlers

import (
	"github.com/festra/event_registration_app/cmd/docs"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/middleware"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// One shared per-IP limiter for the credential endpoints
	credentialLimiter, err := middleware.NewMemoryRateLimiter("5-M")
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1")
	registerAuthRoutes(v1, cfg, services, credentialLimiter)
	registerGoogleAuthRoutes(v1, cfg, services)
	registerUserRoutes(v1, cfg, services)
	registerEventRoutes(v1, cfg, services)
	registerAdminRoutes(v1, cfg, services, credentialLimiter)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package handlers

import (
	"github.com/devjsik/exchange_rate_app/cmd/docs"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	portssvc "github.com/devjsik/exchange_rate_app/internal/core/ports/services"
	"github.com/devjsik/exchange_rate_app/internal/middleware"
	"github.com/devjsik/exchange_rate_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	registerCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public read surface and the admin surface under /api/v1
	setupAPIV1Routes(r, cfg, services, limiterInstance)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	registerRateRoutes(v1, services.Rate, services.Calculator)
	registerBankRoutes(v1, services.Bank)

	// Operator surface requires a bearer token
	admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	registerBankAdminRoutes(admin, services.Bank)
	registerAdminRoutes(admin, services.Rate, services.History, services.Backfill)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerCustomValidations hooks domain-specific binding rules into gin's
// validator engine.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		return domain.ConversionDirection(fl.Field().String()).Valid()
	})
}

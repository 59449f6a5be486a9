package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	taxonomyHandler "spacecatalog-backend/internal/domains/taxonomy/handler"
	"spacecatalog-backend/internal/shared/middleware"
	"spacecatalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupSpaceRoutes(v1, c)
		setupTaxonomyRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.Profile)
	}
}

// ========================================
// SPACE ROUTES
// ========================================
func setupSpaceRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Public reads
	spaces := v1.Group("/spaces")
	{
		spaces.GET("", c.SpaceHandler.List)
		spaces.GET("/:identifier", c.SpaceHandler.Get)
	}

	// Authenticated mutations; authorship is enforced in the service
	authSpaces := v1.Group("/spaces")
	authSpaces.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authSpaces.POST("", c.SpaceHandler.Create)
		authSpaces.PATCH("/:identifier", c.SpaceHandler.Update)
		authSpaces.DELETE("/:identifier", c.SpaceHandler.Delete)
	}
}

// ========================================
// TAXONOMY ROUTES
// ========================================
func setupTaxonomyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	mount := func(path string, h *taxonomyHandler.TaxonomyHandler) {
		group := v1.Group(path)
		{
			group.GET("", h.List)
			group.GET("/:id", h.GetByID)
		}

		authGroup := v1.Group(path)
		authGroup.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			authGroup.POST("", h.Create)
			authGroup.PATCH("/:id", h.Update)
			authGroup.DELETE("/:id", h.Delete)
		}
	}

	mount("/types", c.TypeHandler)
	mount("/categories", c.CategoryHandler)
	mount("/features", c.FeatureHandler)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

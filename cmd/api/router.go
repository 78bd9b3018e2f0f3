package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booklibrary-backend/internal/shared/middleware"
	"booklibrary-backend/pkg/container"
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

		setupBookRoutes(v1, c)
		setupCustomBookRoutes(v1, c)
	}

	return router
}

// ========================================
// OPEN LIBRARY PASS-THROUGH ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("/search", c.CatalogHandler.Search)
		books.GET("/search/title", c.CatalogHandler.SearchByTitle)
		books.GET("/search/author", c.CatalogHandler.SearchByAuthor)
		books.GET("/search/subject", c.CatalogHandler.SearchBySubject)
		books.GET("/details/:workId", c.CatalogHandler.GetBookDetails)
		books.GET("/details/:workId/editions", c.CatalogHandler.GetBookEditions)
		books.GET("/trending", c.CatalogHandler.GetTrendingBooks)
	}
}

// ========================================
// CUSTOM BOOK ROUTES
// ========================================
func setupCustomBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	customBooks := v1.Group("/custom-books")
	{
		customBooks.GET("", c.BookHandler.GetCustomBooks)
		customBooks.POST("", c.BookHandler.CreateCustomBook)
		customBooks.GET("/export", c.BookHandler.ExportCustomBooks)
		customBooks.GET("/:id", c.BookHandler.GetCustomBook)
		customBooks.PUT("/:id", c.BookHandler.UpdateCustomBook)
		customBooks.DELETE("/:id", c.BookHandler.DeleteCustomBook)
		customBooks.PUT("/:id/cover", c.BookHandler.UploadCover)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"success": status == http.StatusOK,
			"data": gin.H{
				"name":    c.Config.App.Name,
				"version": c.Config.App.Version,
				"checks":  checks,
			},
		})
	}
}

// Package api wires the catalog handlers onto a gin engine.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kutbudev/storefront-api/internal/api/handlers"
)

// NewRouter builds the HTTP router with all catalog routes registered.
func NewRouter(db *gorm.DB, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	categoryHandler := handlers.NewCategoryHandler(db, logger)
	tagHandler := handlers.NewTagHandler(db, logger)
	productHandler := handlers.NewProductHandler(db, logger)

	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)
		categories.POST("", categoryHandler.Create)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}

	tags := r.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.GET("/:id", tagHandler.Get)
		tags.POST("", tagHandler.Create)
		tags.PUT("/:id", tagHandler.Update)
		tags.DELETE("/:id", tagHandler.Delete)
	}

	products := r.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.POST("", productHandler.Create)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	return r
}

package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter configures the API routes.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)
		v1.GET("/repos/:owner/:repo/stats", h.GetRepoStats)
		v1.GET("/cache/stats", h.GetCacheStats)
		v1.DELETE("/cache", h.ClearCache)
	}

	return r
}

package handler

import (
	"net/http"

	"japan-address-api/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups the endpoint handlers mounted by NewRouter
type Handlers struct {
	Import    *ImportHandler
	Addresses *AddressHandler
	Stats     *StatsHandler
}

// NewRouter builds the gin engine with every API route
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/import", h.Import.Upload)
	r.POST("/import/process", h.Import.Process)
	r.GET("/import/process", h.Import.ProcessStatus)

	r.GET("/addresses", h.Addresses.ListAddresses)

	r.GET("/prefectures", Prefectures)
	r.GET("/stats", h.Stats.Summary)
	r.GET("/stats/prefecture/:code", h.Stats.Prefecture)

	return r
}

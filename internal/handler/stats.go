package handler

import (
	"context"
	"errors"
	"net/http"

	"japan-address-api/internal/models"
	"japan-address-api/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsService interface for dependency injection
type StatsService interface {
	Summary(ctx context.Context) (*service.Stats, error)
	Prefecture(ctx context.Context, prefCode string) (*service.PrefectureStats, error)
}

// StatsHandler handles aggregate count requests
type StatsHandler struct {
	service StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Summary handles GET /stats requests
//
//	@Summary	Address counts per prefecture
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	service.Stats
//	@Router		/stats [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	stats, err := h.service.Summary(c.Request.Context())
	if err != nil {
		internalError(c, err, "failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Prefecture handles GET /stats/prefecture/:code requests
//
//	@Summary	Address counts per city of one prefecture
//	@Tags		stats
//	@Produce	json
//	@Param		code	path		string	true	"prefecture code"
//	@Success	200		{object}	service.PrefectureStats
//	@Failure	404		{object}	ErrorResponse
//	@Router		/stats/prefecture/{code} [get]
func (h *StatsHandler) Prefecture(c *gin.Context) {
	stats, err := h.service.Prefecture(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownPrefecture) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		internalError(c, err, "failed to fetch prefecture stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CatalogResponse lists the fixed reference catalog
type CatalogResponse struct {
	Regions     []models.Region     `json:"regions"`
	Prefectures []models.Prefecture `json:"prefectures"`
}

// Prefectures handles GET /prefectures requests
//
//	@Summary	Region and prefecture catalog
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	CatalogResponse
//	@Router		/prefectures [get]
func Prefectures(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{Regions: models.Regions, Prefectures: models.Prefectures})
}

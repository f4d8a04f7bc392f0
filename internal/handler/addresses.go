package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"japan-address-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressService interface for dependency injection
type AddressService interface {
	ListAddresses(ctx context.Context, q service.AddressQuery) (*service.AddressPage, error)
}

// AddressHandler handles address browse requests
type AddressHandler struct {
	service      AddressService
	defaultLimit int
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressService, defaultLimit int) *AddressHandler {
	return &AddressHandler{service: svc, defaultLimit: defaultLimit}
}

// ListAddresses handles GET /addresses requests
//
//	@Summary	Browse stored addresses
//	@Tags		addresses
//	@Produce	json
//	@Param		prefecture	query		string	false	"prefecture code"
//	@Param		city		query		string	false	"city code"
//	@Param		query		query		string	false	"free text matched against prefecture, city and town names"
//	@Param		page		query		int		false	"page number, from 1"
//	@Param		limit		query		int		false	"page size"
//	@Success	200			{object}	service.AddressPage
//	@Failure	400			{object}	ErrorResponse
//	@Router		/addresses [get]
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid 'page' parameter"})
		return
	}

	limit, err := intQuery(c, "limit", h.defaultLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid 'limit' parameter"})
		return
	}

	result, err := h.service.ListAddresses(c.Request.Context(), service.AddressQuery{
		PrefCode: c.Query("prefecture"),
		CityCode: c.Query("city"),
		Text:     c.Query("query"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		internalError(c, err, "failed to list addresses")
		return
	}

	c.JSON(http.StatusOK, result)
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

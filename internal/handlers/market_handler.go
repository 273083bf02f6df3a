package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "plutus/internal/errors"
	"plutus/internal/services"
)

// MarketHandler handles market simulation requests from the pipeline
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// TickRequest represents the market tick payload
type TickRequest struct {
	At string `json:"at" binding:"omitempty"`
}

// SimulateTick advances all asset prices by one simulated step
// @Summary     Simulate market tick
// @Description Move every asset's price by a bounded random step and record the new price
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       request body TickRequest false "Tick timestamp, defaults to now"
// @Success     200 {object} map[string]int "Number of assets updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /pipeline/market/tick [post]
func (h *MarketHandler) SimulateTick(c *gin.Context) {
	var req TickRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	at := time.Now()
	if req.At != "" {
		parsed, err := parseFlexibleTime(req.At)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		at = parsed
	}

	updated, err := h.marketService.SimulateTick(at)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

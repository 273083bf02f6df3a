package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "plutus/internal/errors"
	"plutus/internal/services"
)

const (
	defaultProfitMonths = 6
	defaultMoversLimit  = 5
)

// StatisticsHandler handles derived portfolio statistics requests
type StatisticsHandler struct {
	statisticsService services.StatisticsServicer
}

// NewStatisticsHandler creates a new StatisticsHandler
func NewStatisticsHandler(statisticsService services.StatisticsServicer) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// GetPortfolioSummary values a portfolio against current prices
// @Summary     Portfolio summary
// @Description Value a portfolio's holdings against current prices, with realized and unrealized gains
// @Tags        statistics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} valuation.Summary "Portfolio summary"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /statistics/portfolios/{id}/summary [get]
func (h *StatisticsHandler) GetPortfolioSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.statisticsService.GetPortfolioSummary(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetNetWorth returns an aligned net-worth series per portfolio
// @Summary     Net worth series
// @Description Build a daily net-worth series for each of the user's portfolios, keyed by portfolio name
// @Tags        statistics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]valuation.Point "Net worth per portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /statistics/networth [get]
func (h *StatisticsHandler) GetNetWorth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.statisticsService.GetNetWorthSeries(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"networth": series})
}

// GetMonthlyProfits returns month-over-month profit deltas per asset class
// @Summary     Monthly profits
// @Description Compute month-over-month profit deltas per asset class from the user's profit logs
// @Tags        statistics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months to include" default(6)
// @Success     200 {object} map[string][]valuation.MonthProfit "Monthly profits per asset class"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /statistics/profits [get]
func (h *StatisticsHandler) GetMonthlyProfits(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := defaultProfitMonths
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 120 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 120"))
			return
		}
		months = parsed
	}

	profits, err := h.statisticsService.GetMonthlyProfits(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profits": profits})
}

// GetTopMovers ranks assets by period return
// @Summary     Top movers
// @Description Rank equities and fixed income assets by growth across their recorded price history
// @Tags        statistics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum entries per list" default(5)
// @Success     200 {object} valuation.Movers "Top movers"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /statistics/movers [get]
func (h *StatisticsHandler) GetTopMovers(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	limit := defaultMoversLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	movers, err := h.statisticsService.GetTopMovers(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movers": movers})
}

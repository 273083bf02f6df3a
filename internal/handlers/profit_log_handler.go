package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "plutus/internal/errors"
	"plutus/internal/models"
	"plutus/internal/pagination"
	"plutus/internal/services"
)

// ProfitLogHandler handles profit log requests
type ProfitLogHandler struct {
	profitLogService services.ProfitLogServicer
	auditService     services.AuditServicer
}

// NewProfitLogHandler creates a new ProfitLogHandler
func NewProfitLogHandler(profitLogService services.ProfitLogServicer, auditService services.AuditServicer) *ProfitLogHandler {
	return &ProfitLogHandler{profitLogService: profitLogService, auditService: auditService}
}

// CreateProfitLogRequest represents the profit log creation payload
type CreateProfitLogRequest struct {
	AssetType models.AssetType `json:"asset_type" binding:"required,asset_type"`
	Value     float64          `json:"value" binding:"required"`
	Date      string           `json:"date" binding:"required"`
}

// CreateProfitLog records a profit snapshot for one asset class
// @Summary     Create profit log
// @Description Record a dated profit snapshot for one asset class
// @Tags        profit-logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProfitLogRequest true "Profit log data"
// @Success     201 {object} models.ProfitLog "Profit log created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profit-logs [post]
func (h *ProfitLogHandler) CreateProfitLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProfitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	log, err := h.profitLogService.CreateProfitLog(userID, req.AssetType, req.Value, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PROFIT_LOG", "profit_log", log.ID, c.ClientIP(), map[string]interface{}{
		"asset_type": log.AssetType,
		"value":      log.Value,
	})

	c.JSON(http.StatusCreated, gin.H{"profit_log": log})
}

// ListProfitLogs lists the user's profit logs in date order
// @Summary     List profit logs
// @Description List the authenticated user's profit logs, oldest first
// @Tags        profit-logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} pagination.PageResponse[models.ProfitLog] "Profit logs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profit-logs [get]
func (h *ProfitLogHandler) ListProfitLogs(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var pageReq pagination.PageRequest
	if err := c.ShouldBindQuery(&pageReq); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	pageReq.Defaults()

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		to = &t
	}

	page, err := h.profitLogService.GetUserProfitLogs(userID, from, to, pageReq)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeleteProfitLog soft-deletes a profit log
// @Summary     Delete profit log
// @Description Soft-delete one of the user's profit logs
// @Tags        profit-logs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Profit log ID"
// @Success     204 "Profit log deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /profit-logs/{id} [delete]
func (h *ProfitLogHandler) DeleteProfitLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.profitLogService.DeleteProfitLog(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PROFIT_LOG", "profit_log", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

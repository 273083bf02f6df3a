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

// AssetHandler handles asset catalog and price history requests
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService}
}

// CreateAssetRequest represents the asset creation payload
type CreateAssetRequest struct {
	Code         string           `json:"code" binding:"required,max=16"`
	Name         string           `json:"name" binding:"required,max=255"`
	Type         models.AssetType `json:"type" binding:"required,asset_type"`
	Currency     string           `json:"currency" binding:"required,iso4217"`
	CurrentPrice float64          `json:"current_price" binding:"gte=0"`
}

// UpdateAssetRequest represents the asset update payload
type UpdateAssetRequest struct {
	Name         string   `json:"name" binding:"max=255"`
	CurrentPrice *float64 `json:"current_price" binding:"omitempty,gte=0"`
}

// RecordPricesRequest represents a bulk price recording payload
type RecordPricesRequest struct {
	Prices []services.AssetPriceInput `json:"prices" binding:"required,min=1,dive"`
}

// listAssetsQuery holds the query parameters for listing assets
type listAssetsQuery struct {
	pagination.PageRequest
	Type   string `form:"type" binding:"omitempty,asset_type"`
	Search string `form:"search" binding:"omitempty,max=255"`
}

// CreateAsset creates a new asset
// @Summary     Create asset
// @Description Create a new asset in the catalog
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset data"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate code"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(req.Code, req.Name, req.Type, req.Currency, req.CurrentPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ASSET", "asset", asset.ID, c.ClientIP(), map[string]interface{}{
		"code": asset.Code,
		"type": asset.Type,
	})

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// ListAssets lists assets with optional filters
// @Summary     List assets
// @Description List assets with optional type filter and code/name search
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Param       type query string false "Asset type filter" Enums(equity, fixed_income, cash)
// @Param       search query string false "Search in code and name"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var query listAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	query.Defaults()

	filter := services.AssetFilter{Search: query.Search}
	if query.Type != "" {
		assetType := models.AssetType(query.Type)
		filter.Type = &assetType
	}

	page, err := h.assetService.ListAssets(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetAsset returns a single asset by ID
// @Summary     Get asset
// @Description Get a single asset by its ID
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset updates an asset's mutable fields
// @Summary     Update asset
// @Description Update an asset's name and current price
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} models.Asset "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
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

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.UpdateAsset(id, req.Name, req.CurrentPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ASSET", "asset", asset.ID, c.ClientIP(), map[string]interface{}{
		"name":          req.Name,
		"current_price": req.CurrentPrice,
	})

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset soft-deletes an asset
// @Summary     Delete asset
// @Description Soft-delete an asset from the catalog
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     204 "Asset deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
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

	if err := h.assetService.DeleteAsset(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ASSET", "asset", id, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetPriceHistory returns an asset's price history
// @Summary     Get price history
// @Description Get an asset's recorded price history, optionally bounded by date
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       from query string false "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to query string false "End date (RFC3339 or YYYY-MM-DD)"
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} pagination.PageResponse[models.AssetPrice] "Price history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id}/prices [get]
func (h *AssetHandler) GetPriceHistory(c *gin.Context) {
	id, err := parsePathID(c, "id")
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

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, err = parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	page, err := h.assetService.GetPriceHistory(id, from, to, pageReq)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// RecordPrices records a batch of price observations
// @Summary     Record prices
// @Description Record a batch of asset price observations, deduplicated per asset and date
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       request body RecordPricesRequest true "Price observations"
// @Success     200 {object} map[string]int "Number of prices recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Unknown asset"
// @Router      /pipeline/assets/prices [post]
func (h *AssetHandler) RecordPrices(c *gin.Context) {
	var req RecordPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recorded, err := h.assetService.RecordPrices(req.Prices)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": recorded})
}

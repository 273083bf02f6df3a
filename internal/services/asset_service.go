package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "plutus/internal/errors"
	"plutus/internal/models"
	"plutus/internal/pagination"
	"plutus/internal/valuation"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new asset record.
func (s *assetService) CreateAsset(code, name string, assetType models.AssetType, currency string, currentPrice float64) (*models.Asset, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if currency == "" {
		currency = "USD"
	}

	asset := &models.Asset{
		Code:         strings.ToUpper(code),
		Name:         name,
		Type:         assetType,
		Currency:     currency,
		CurrentPrice: currentPrice,
	}

	if err := s.db.Create(asset).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateAsset
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// GetAssetByID returns an asset by its ID.
func (s *assetService) GetAssetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// GetAssetByCode returns an asset by its unique code.
func (s *assetService) GetAssetByCode(code string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// ListAssets returns a paginated list of assets ordered by code, optionally
// filtered by type and a code/name substring search.
func (s *assetService) ListAssets(page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{})
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToUpper(filter.Search) + "%"
		base = base.Where("UPPER(code) LIKE ? OR UPPER(name) LIKE ?", pattern, pattern)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Order("code ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateAsset updates an asset's display name and/or current price.
func (s *assetService) UpdateAsset(id, name string, currentPrice *float64) (*models.Asset, error) {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if currentPrice != nil {
		updates["current_price"] = *currentPrice
	}
	if len(updates) == 0 {
		return asset, nil
	}

	if err := s.db.Model(asset).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// DeleteAsset soft-deletes an asset. Historical prices and transactions
// referencing the code are left in place.
func (s *assetService) DeleteAsset(id string) error {
	asset, err := s.GetAssetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(asset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RecordPrices bulk-inserts price entries, skipping duplicates.
func (s *assetService) RecordPrices(prices []AssetPriceInput) (int, error) {
	if len(prices) == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Prices array is empty")
	}

	count := 0
	for _, p := range prices {
		ap := models.AssetPrice{
			AssetID: p.AssetID,
			Price:   p.Price,
			Date:    p.Date,
		}
		result := s.db.Where("asset_id = ? AND date = ?", ap.AssetID, ap.Date).
			FirstOrCreate(&ap)
		if result.Error != nil {
			return count, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected > 0 {
			count++
		}
	}

	return count, nil
}

// GetPriceHistory returns paginated price history for an asset within a date range.
func (s *assetService) GetPriceHistory(
	assetID string,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.AssetPrice], error) {
	if _, err := s.GetAssetByID(assetID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.AssetPrice{}).Where("asset_id = ?", assetID)
	if !from.IsZero() {
		base = base.Where("date >= ?", from)
	}
	if !to.IsZero() {
		base = base.Where("date <= ?", to)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var prices []models.AssetPrice
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&prices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(prices, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCurrentPrices returns a code -> current price map for the given codes.
// Codes with no matching asset are simply absent from the map; downstream
// valuation skips them.
func (s *assetService) GetCurrentPrices(codes []string) (map[string]float64, error) {
	if len(codes) == 0 {
		return map[string]float64{}, nil
	}

	var assets []models.Asset
	if err := s.db.Where("code IN ?", codes).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make(map[string]float64, len(assets))
	for _, a := range assets {
		result[a.Code] = a.CurrentPrice
	}
	return result, nil
}

// GetPriceSeries returns each requested asset's historical prices as parallel
// date/price sequences ordered by date ascending.
func (s *assetService) GetPriceSeries(codes []string) (map[string]valuation.PriceSeries, error) {
	if len(codes) == 0 {
		return map[string]valuation.PriceSeries{}, nil
	}

	var assets []models.Asset
	if err := s.db.Where("code IN ?", codes).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	codeByID := make(map[string]string, len(assets))
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		codeByID[a.ID] = a.Code
		ids = append(ids, a.ID)
	}

	var prices []models.AssetPrice
	if err := s.db.Where("asset_id IN ?", ids).
		Order("asset_id ASC, date ASC").Find(&prices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make(map[string]valuation.PriceSeries, len(assets))
	for _, p := range prices {
		code := codeByID[p.AssetID]
		series := result[code]
		series.Dates = append(series.Dates, p.Date)
		series.Prices = append(series.Prices, p.Price)
		result[code] = series
	}
	return result, nil
}

// GetQuotes returns every asset with its full ordered price history, shaped
// for the ranking helper.
func (s *assetService) GetQuotes() ([]valuation.Quote, error) {
	var assets []models.Asset
	if err := s.db.Order("code ASC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	codes := make([]string, len(assets))
	for i, a := range assets {
		codes[i] = a.Code
	}
	series, err := s.GetPriceSeries(codes)
	if err != nil {
		return nil, err
	}

	quotes := make([]valuation.Quote, 0, len(assets))
	for _, a := range assets {
		quotes = append(quotes, valuation.Quote{
			Code:   a.Code,
			Name:   a.Name,
			Type:   a.Type,
			Prices: series[a.Code].Prices,
		})
	}
	return quotes, nil
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}

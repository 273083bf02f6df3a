package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "plutus/internal/errors"
	"plutus/internal/models"
	"plutus/internal/valuation"
)

// statisticsService computes derived portfolio statistics. It fetches an
// immutable snapshot of transactions and prices per call and delegates the
// arithmetic to the valuation package; no valuation state is ever stored.
type statisticsService struct {
	db           *gorm.DB
	assetService AssetServicer
}

// NewStatisticsService creates a new StatisticsServicer.
func NewStatisticsService(db *gorm.DB, assetService AssetServicer) StatisticsServicer {
	return &statisticsService{db: db, assetService: assetService}
}

// GetPortfolioSummary values one portfolio's ledger against current prices.
// Transactions are scanned in insertion order, matching how they were
// appended to the ledger; they are not re-sorted by trade date.
func (s *statisticsService) GetPortfolioSummary(userID, portfolioID string) (*valuation.Summary, error) {
	portfolio, err := s.getOwnedPortfolio(userID, portfolioID)
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	if err := s.db.Where("portfolio_id = ?", portfolio.ID).
		Order("created_at ASC").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	prices, err := s.assetService.GetCurrentPrices(assetCodes(txs))
	if err != nil {
		return nil, err
	}

	summary := valuation.ComputeHoldings(txs, prices)
	return &summary, nil
}

// GetNetWorthSeries builds an aligned daily net-worth series for each of the
// user's portfolios, keyed by portfolio name.
func (s *statisticsService) GetNetWorthSeries(userID string) (map[string][]valuation.Point, error) {
	var portfolios []models.Portfolio
	if err := s.db.Where("user_id = ?", userID).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at ASC").Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	codes := map[string]bool{}
	for _, p := range portfolios {
		for _, tx := range p.Transactions {
			if tx.Direction == models.TradeDirectionBuy {
				codes[tx.AssetCode] = true
			}
		}
	}
	codeList := make([]string, 0, len(codes))
	for code := range codes {
		codeList = append(codeList, code)
	}

	series, err := s.assetService.GetPriceSeries(codeList)
	if err != nil {
		return nil, err
	}

	return valuation.BuildNetWorthSeries(portfolios, series), nil
}

// GetMonthlyProfits computes month-over-month profit deltas per asset class
// from the user's profit logs.
func (s *statisticsService) GetMonthlyProfits(userID string, monthsBack int) (map[models.AssetType][]valuation.MonthProfit, error) {
	var logs []models.ProfitLog
	if err := s.db.Where("user_id = ?", userID).
		Order("date ASC").Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return valuation.MonthlyProfitDelta(logs, monthsBack, time.Now()), nil
}

// GetTopMovers ranks assets by period return across their full price history.
func (s *statisticsService) GetTopMovers(limit int) (*valuation.Movers, error) {
	quotes, err := s.assetService.GetQuotes()
	if err != nil {
		return nil, err
	}

	movers := valuation.TopMovers(quotes, limit)
	return &movers, nil
}

// getOwnedPortfolio loads a portfolio and verifies ownership.
func (s *statisticsService) getOwnedPortfolio(userID, portfolioID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.db.First(&portfolio, "id = ?", portfolioID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if portfolio.UserID != userID {
		return nil, apperrors.ErrPortfolioNotFound
	}
	return &portfolio, nil
}

// assetCodes collects the distinct asset codes referenced by a ledger.
func assetCodes(txs []models.Transaction) []string {
	seen := map[string]bool{}
	codes := make([]string, 0, len(txs))
	for _, tx := range txs {
		if !seen[tx.AssetCode] {
			seen[tx.AssetCode] = true
			codes = append(codes, tx.AssetCode)
		}
	}
	return codes
}

package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "plutus/internal/errors"
	"plutus/internal/models"
	"plutus/internal/pagination"
)

// transactionService handles portfolio transaction business logic.
type transactionService struct {
	db               *gorm.DB
	portfolioService PortfolioServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, portfolioService PortfolioServicer) TransactionServicer {
	return &transactionService{db: db, portfolioService: portfolioService}
}

// AddTransaction appends a buy or sell entry to a portfolio's ledger.
// The referenced asset must exist; quantity and amount validity beyond
// binding-level checks is not enforced here.
func (s *transactionService) AddTransaction(
	userID, portfolioID, assetCode string,
	direction models.TradeDirection,
	quantity, amount float64,
	tradeDate time.Time,
	notes string,
) (*models.Transaction, error) {
	if _, err := s.portfolioService.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	if direction != models.TradeDirectionBuy && direction != models.TradeDirectionSell {
		return nil, apperrors.ErrInvalidTradeDirection
	}

	code := strings.ToUpper(assetCode)
	var count int64
	if err := s.db.Model(&models.Asset{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrAssetNotFound
	}

	tx := &models.Transaction{
		PortfolioID: portfolioID,
		AssetCode:   code,
		Direction:   direction,
		Quantity:    quantity,
		Amount:      amount,
		TradeDate:   tradeDate,
		Notes:       notes,
	}

	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return tx, nil
}

// GetPortfolioTransactions returns a paginated, filtered list of a
// portfolio's transactions in insertion order.
func (s *transactionService) GetPortfolioTransactions(
	userID, portfolioID string,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.portfolioService.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("portfolio_id = ?", portfolioID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("created_at ASC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID returns a transaction if its portfolio belongs to the user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Preload("Portfolio").First(&tx, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if tx.Portfolio.UserID != userID {
		return nil, apperrors.ErrTransactionNotFound
	}

	return &tx, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	tx, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// applyTransactionFilters applies optional filter clauses to a query.
func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("trade_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("trade_date <= ?", *f.ToDate)
	}
	if f.Direction != nil {
		q = q.Where("direction = ?", *f.Direction)
	}
	if f.AssetCode != nil {
		q = q.Where("asset_code = ?", strings.ToUpper(*f.AssetCode))
	}
	return q
}

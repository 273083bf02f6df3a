package services

import (
	"time"

	"plutus/internal/models"
	"plutus/internal/pagination"
	"plutus/internal/valuation"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AssetFilter holds optional filter parameters for listing assets.
type AssetFilter struct {
	Type   *models.AssetType
	Search string
}

// AssetPriceInput is a single price observation for bulk recording.
type AssetPriceInput struct {
	AssetID string    `json:"asset_id" binding:"required,uuid"`
	Price   float64   `json:"price" binding:"required,gte=0"`
	Date    time.Time `json:"date" binding:"required"`
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(code, name string, assetType models.AssetType, currency string, currentPrice float64) (*models.Asset, error)
	GetAssetByID(id string) (*models.Asset, error)
	GetAssetByCode(code string) (*models.Asset, error)
	ListAssets(page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error)
	UpdateAsset(id, name string, currentPrice *float64) (*models.Asset, error)
	DeleteAsset(id string) error
	RecordPrices(prices []AssetPriceInput) (int, error)
	GetPriceHistory(assetID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.AssetPrice], error)
	GetCurrentPrices(codes []string) (map[string]float64, error)
	GetPriceSeries(codes []string) (map[string]valuation.PriceSeries, error)
	GetQuotes() ([]valuation.Quote, error)
}

// PortfolioServicer defines the contract for portfolio-related business logic.
type PortfolioServicer interface {
	CreatePortfolio(userID, name, description string) (*models.Portfolio, error)
	GetUserPortfolios(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Portfolio], error)
	GetPortfolioByID(userID, portfolioID string) (*models.Portfolio, error)
	UpdatePortfolio(userID, portfolioID, name, description string) (*models.Portfolio, error)
	DeletePortfolio(userID, portfolioID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Direction *models.TradeDirection
	AssetCode *string
}

// TransactionServicer defines the contract for portfolio transaction business logic.
type TransactionServicer interface {
	AddTransaction(userID, portfolioID, assetCode string, direction models.TradeDirection, quantity, amount float64, tradeDate time.Time, notes string) (*models.Transaction, error)
	GetPortfolioTransactions(userID, portfolioID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// ProfitLogServicer defines the contract for profit log business logic.
type ProfitLogServicer interface {
	CreateProfitLog(userID string, assetType models.AssetType, value float64, date time.Time) (*models.ProfitLog, error)
	GetUserProfitLogs(userID string, from, to *time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.ProfitLog], error)
	DeleteProfitLog(userID, logID string) error
}

// StatisticsServicer defines the contract for derived portfolio statistics.
// All computation is delegated to the valuation package over immutable
// snapshots fetched at call time; nothing is cached or persisted.
type StatisticsServicer interface {
	GetPortfolioSummary(userID, portfolioID string) (*valuation.Summary, error)
	GetNetWorthSeries(userID string) (map[string][]valuation.Point, error)
	GetMonthlyProfits(userID string, monthsBack int) (map[models.AssetType][]valuation.MonthProfit, error)
	GetTopMovers(limit int) (*valuation.Movers, error)
}

// MarketServicer defines the contract for the market simulation.
type MarketServicer interface {
	SimulateTick(at time.Time) (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

package models

import "time"

// TradeDirection represents the direction of a portfolio transaction.
type TradeDirection string

const (
	TradeDirectionBuy  TradeDirection = "buy"
	TradeDirectionSell TradeDirection = "sell"
)

// Transaction represents a single ledger entry in a portfolio: a buy or sell
// of an asset, referenced by code. Amount is the total cost for buys and the
// total proceeds for sells; unit price is derived as Amount / Quantity.
type Transaction struct {
	Base
	PortfolioID string         `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	AssetCode   string         `gorm:"not null;index" json:"asset_code"`
	Direction   TradeDirection `gorm:"not null" json:"direction"`
	Quantity    float64        `gorm:"not null" json:"quantity"`
	Amount      float64        `gorm:"not null" json:"amount"`
	TradeDate   time.Time      `gorm:"not null" json:"trade_date"`
	Notes       string         `json:"notes,omitempty"`

	Portfolio Portfolio `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`
}

package models

// Portfolio groups an ordered sequence of transactions owned by one user.
// Derived totals (market value, realized/unrealized gain) are computed on
// demand from the transaction ledger and are never stored.
type Portfolio struct {
	Base
	UserID       string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string        `gorm:"not null" json:"name"`
	Description  string        `json:"description"`
	Transactions []Transaction `gorm:"foreignKey:PortfolioID" json:"transactions,omitempty"`
}

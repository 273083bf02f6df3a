package models

// AssetType represents the class of a tradable asset.
type AssetType string

const (
	AssetTypeEquity      AssetType = "equity"
	AssetTypeFixedIncome AssetType = "fixed_income"
	AssetTypeCash        AssetType = "cash"
)

// Asset represents a tradable instrument identified by a unique code.
// Historical prices live in AssetPrice; CurrentPrice is the latest quote.
type Asset struct {
	Base
	Code         string    `gorm:"uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"not null" json:"name"`
	Type         AssetType `gorm:"not null" json:"type"`
	Currency     string    `gorm:"not null;default:'USD'" json:"currency"`
	CurrentPrice float64   `gorm:"not null;default:0" json:"current_price"`
}

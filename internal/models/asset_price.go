package models

import (
	"time"

	"plutus/internal/uuid"

	"gorm.io/gorm"
)

// AssetPrice represents a historical price entry for an asset.
// Immutable time-series data, so no Base embed and no soft deletes.
type AssetPrice struct {
	ID      string    `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID string    `gorm:"type:uuid;not null;index" json:"asset_id"`
	Price   float64   `gorm:"not null" json:"price"`
	Date    time.Time `gorm:"not null" json:"date"`
	Asset   Asset     `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *AssetPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}

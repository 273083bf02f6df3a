package models

import (
	"time"

	"plutus/internal/uuid"

	"gorm.io/gorm"
)

// ProfitLog records a point-in-time value observation for one asset class.
// Immutable time-series data, so no Base embed and no soft deletes.
type ProfitLog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	AssetType AssetType `gorm:"not null" json:"asset_type"`
	Value     float64   `gorm:"not null" json:"value"`
	Date      time.Time `gorm:"not null" json:"date"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *ProfitLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}

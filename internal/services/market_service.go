package services

import (
	"math"
	"math/rand"
	"time"

	"gorm.io/gorm"

	apperrors "plutus/internal/errors"
	"plutus/internal/logger"
	"plutus/internal/models"
)

// maxTickStep bounds a single simulated price move to ±3%.
const maxTickStep = 0.03

// marketService advances simulated asset prices with a bounded random walk.
type marketService struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewMarketService creates a new MarketServicer.
func NewMarketService(db *gorm.DB) MarketServicer {
	return &marketService{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SimulateTick moves every asset's current price by a random step of at most
// ±3%, floors the result at one cent, appends the new price to the asset's
// history at the given timestamp, and returns the number of assets updated.
func (s *marketService) SimulateTick(at time.Time) (int, error) {
	var assets []models.Asset
	if err := s.db.Find(&assets).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range assets {
			asset := &assets[i]
			step := (s.rng.Float64()*2 - 1) * maxTickStep
			newPrice := asset.CurrentPrice * (1 + step)
			newPrice = math.Round(newPrice*100) / 100
			if newPrice < 0.01 {
				newPrice = 0.01
			}

			if err := tx.Model(asset).Update("current_price", newPrice).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			entry := &models.AssetPrice{
				AssetID: asset.ID,
				Price:   newPrice,
				Date:    at,
			}
			if err := tx.Create(entry).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Get().Infow("market tick simulated", "assets", count, "at", at)
	return count, nil
}

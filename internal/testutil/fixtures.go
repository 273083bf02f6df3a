package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"plutus/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAsset creates an asset of the given type with a unique code.
func CreateTestAsset(t *testing.T, db *gorm.DB, assetType models.AssetType, currentPrice float64) *models.Asset {
	t.Helper()

	n := nextID()
	asset := &models.Asset{
		Code:         fmt.Sprintf("TST%d", n),
		Name:         fmt.Sprintf("Test Asset %d", n),
		Type:         assetType,
		Currency:     "USD",
		CurrentPrice: currentPrice,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestAssetPrices records one price per day for the given asset,
// starting at start and stepping one day per entry.
func CreateTestAssetPrices(t *testing.T, db *gorm.DB, assetID string, start time.Time, prices ...float64) []models.AssetPrice {
	t.Helper()

	entries := make([]models.AssetPrice, 0, len(prices))
	for i, price := range prices {
		entry := models.AssetPrice{
			AssetID: assetID,
			Price:   price,
			Date:    start.AddDate(0, 0, i),
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("failed to create test asset price: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries
}

// CreateTestPortfolio creates a portfolio for the given user.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID string) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID: userID,
		Name:   fmt.Sprintf("Test Portfolio %d", nextID()),
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestTransaction appends a transaction to the given portfolio's ledger.
func CreateTestTransaction(t *testing.T, db *gorm.DB, portfolioID, assetCode string, direction models.TradeDirection, quantity, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		PortfolioID: portfolioID,
		AssetCode:   assetCode,
		Direction:   direction,
		Quantity:    quantity,
		Amount:      amount,
		TradeDate:   time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestProfitLog records a dated profit observation for the user.
func CreateTestProfitLog(t *testing.T, db *gorm.DB, userID string, assetType models.AssetType, value float64, date time.Time) *models.ProfitLog {
	t.Helper()

	log := &models.ProfitLog{
		UserID:    userID,
		AssetType: assetType,
		Value:     value,
		Date:      date,
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create test profit log: %v", err)
	}
	return log
}

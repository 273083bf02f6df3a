package services

import (
	"testing"
	"time"

	"plutus/internal/models"
	"plutus/internal/pagination"
	"plutus/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset, err := svc.CreateAsset("aapl", "Apple Inc.", models.AssetTypeEquity, "USD", 190.5)
		testutil.AssertNoError(t, err)

		if asset.ID == "" {
			t.Fatal("expected generated asset ID")
		}
		if asset.Code != "AAPL" {
			t.Errorf("expected uppercased code AAPL, got %s", asset.Code)
		}
		if asset.CurrentPrice != 190.5 {
			t.Errorf("expected price 190.5, got %f", asset.CurrentPrice)
		}
	})

	t.Run("default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset, err := svc.CreateAsset("BND", "Bond Fund", models.AssetTypeFixedIncome, "", 80)
		testutil.AssertNoError(t, err)

		if asset.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", asset.Currency)
		}
	})

	t.Run("duplicate_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("AAPL", "Apple", models.AssetTypeEquity, "USD", 190)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAsset("aapl", "Apple again", models.AssetTypeEquity, "USD", 191)
		testutil.AssertAppError(t, err, "DUPLICATE_ASSET")
	})

	t.Run("empty_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset("  ", "Apple", models.AssetTypeEquity, "USD", 190)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListAssets(t *testing.T) {
	t.Run("filters_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)
		testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 50)
		testutil.CreateTestAsset(t, db, models.AssetTypeCash, 1)

		equity := models.AssetTypeEquity
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.ListAssets(page, AssetFilter{Type: &equity})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 equities, got %d", result.TotalItems)
		}
	})

	t.Run("search_matches_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		a, err := svc.CreateAsset("AAPL", "Apple Inc.", models.AssetTypeEquity, "USD", 190)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateAsset("MSFT", "Microsoft", models.AssetTypeEquity, "USD", 400)
		testutil.AssertNoError(t, err)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.ListAssets(page, AssetFilter{Search: "apple"})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 || result.Data[0].ID != a.ID {
			t.Errorf("expected only Apple, got %d items", result.TotalItems)
		}
	})

	t.Run("excludes_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)
		testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 50)

		testutil.AssertNoError(t, svc.DeleteAsset(asset.ID))

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.ListAssets(page, AssetFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected deleted asset excluded, got %d items", result.TotalItems)
		}
	})
}

func TestUpdateAsset(t *testing.T) {
	t.Run("updates_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)

		price := 123.45
		updated, err := svc.UpdateAsset(asset.ID, "", &price)
		testutil.AssertNoError(t, err)

		if updated.CurrentPrice != 123.45 {
			t.Errorf("expected 123.45, got %f", updated.CurrentPrice)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.UpdateAsset("0190a1b2-0000-7000-8000-00000000dead", "Name", nil)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestRecordPrices(t *testing.T) {
	t.Run("records_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)
		day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

		count, err := svc.RecordPrices([]AssetPriceInput{
			{AssetID: asset.ID, Price: 101, Date: day},
			{AssetID: asset.ID, Price: 102, Date: day.AddDate(0, 0, 1)},
		})
		testutil.AssertNoError(t, err)

		if count != 2 {
			t.Errorf("expected 2 recorded, got %d", count)
		}
	})

	t.Run("skips_duplicate_dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)
		day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

		_, err := svc.RecordPrices([]AssetPriceInput{{AssetID: asset.ID, Price: 101, Date: day}})
		testutil.AssertNoError(t, err)

		count, err := svc.RecordPrices([]AssetPriceInput{{AssetID: asset.ID, Price: 999, Date: day}})
		testutil.AssertNoError(t, err)

		if count != 0 {
			t.Errorf("expected duplicate skipped, got %d recorded", count)
		}

		var prices []models.AssetPrice
		db.Where("asset_id = ?", asset.ID).Find(&prices)
		if len(prices) != 1 || prices[0].Price != 101 {
			t.Errorf("expected original price preserved, got %v", prices)
		}
	})

	t.Run("empty_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.RecordPrices(nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetPriceHistory(t *testing.T) {
	t.Run("bounded_by_dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestAssetPrices(t, db, asset.ID, start, 100, 101, 102, 103, 104)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetPriceHistory(asset.ID, start.AddDate(0, 0, 1), start.AddDate(0, 0, 3), page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected 3 prices within bounds, got %d", result.TotalItems)
		}
	})

	t.Run("zero_bounds_return_all", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestAssetPrices(t, db, asset.ID, start, 100, 101, 102)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetPriceHistory(asset.ID, time.Time{}, time.Time{}, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected all 3 prices, got %d", result.TotalItems)
		}
	})

	t.Run("unknown_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		_, err := svc.GetPriceHistory("0190a1b2-0000-7000-8000-00000000dead", time.Time{}, time.Time{}, page)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestGetCurrentPrices(t *testing.T) {
	t.Run("omits_unknown_codes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 190.5)

		prices, err := svc.GetCurrentPrices([]string{asset.Code, "GHOST"})
		testutil.AssertNoError(t, err)

		if len(prices) != 1 {
			t.Fatalf("expected 1 price, got %d", len(prices))
		}
		if prices[asset.Code] != 190.5 {
			t.Errorf("expected 190.5, got %f", prices[asset.Code])
		}
		if _, ok := prices["GHOST"]; ok {
			t.Error("unknown code must be absent, not zero")
		}
	})
}

func TestGetPriceSeries(t *testing.T) {
	t.Run("ordered_by_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		asset := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 102)
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestAssetPrices(t, db, asset.ID, start, 100, 101, 102)

		series, err := svc.GetPriceSeries([]string{asset.Code})
		testutil.AssertNoError(t, err)

		s, ok := series[asset.Code]
		if !ok {
			t.Fatal("expected series for asset code")
		}
		if len(s.Prices) != 3 || s.Prices[0] != 100 || s.Prices[2] != 102 {
			t.Errorf("expected ascending prices [100 101 102], got %v", s.Prices)
		}
		if len(s.Dates) != len(s.Prices) {
			t.Errorf("expected parallel sequences, got %d dates / %d prices", len(s.Dates), len(s.Prices))
		}
	})
}

func TestGetQuotes(t *testing.T) {
	t.Run("includes_assets_without_prices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		priced := testutil.CreateTestAsset(t, db, models.AssetTypeEquity, 100)
		testutil.CreateTestAsset(t, db, models.AssetTypeCash, 1)
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestAssetPrices(t, db, priced.ID, start, 100, 110)

		quotes, err := svc.GetQuotes()
		testutil.AssertNoError(t, err)

		if len(quotes) != 2 {
			t.Fatalf("expected 2 quotes, got %d", len(quotes))
		}
		var found bool
		for _, q := range quotes {
			if q.Code == priced.Code {
				found = true
				if len(q.Prices) != 2 {
					t.Errorf("expected 2 prices, got %d", len(q.Prices))
				}
			}
		}
		if !found {
			t.Error("expected quote for priced asset")
		}
	})
}

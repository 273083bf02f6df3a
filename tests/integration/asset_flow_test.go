package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAssetFlow_FullLifecycle(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "assetflow@test.com", "password123")

	// Step 1: Create asset
	rec := app.request("POST", "/api/v1/assets",
		`{"code":"aapl","name":"Apple Inc.","type":"equity","currency":"USD","current_price":175}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating asset, got %d: %s", rec.Code, rec.Body.String())
	}
	asset := parseJSON(t, rec)["asset"].(map[string]interface{})
	assetID := asset["id"].(string)

	if asset["code"] != "AAPL" {
		t.Errorf("expected code uppercased to AAPL, got %v", asset["code"])
	}
	if asset["current_price"].(float64) != 175 {
		t.Errorf("expected current_price 175, got %v", asset["current_price"])
	}

	// Step 2: List assets, expect the single created asset
	rec = app.request("GET", "/api/v1/assets", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing assets, got %d: %s", rec.Code, rec.Body.String())
	}
	listResult := parseJSON(t, rec)
	if listResult["total_items"].(float64) != 1 {
		t.Errorf("expected 1 asset, got %.0f", listResult["total_items"].(float64))
	}

	// Step 3: Get asset by ID
	rec = app.request("GET", "/api/v1/assets/"+assetID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting asset, got %d: %s", rec.Code, rec.Body.String())
	}
	got := parseJSON(t, rec)["asset"].(map[string]interface{})
	if got["name"] != "Apple Inc." {
		t.Errorf("expected name Apple Inc., got %v", got["name"])
	}

	// Step 4: Update asset price
	rec = app.request("PUT", "/api/v1/assets/"+assetID,
		`{"current_price":180.5}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating asset, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["asset"].(map[string]interface{})
	if updated["current_price"].(float64) != 180.5 {
		t.Errorf("expected current_price 180.5, got %v", updated["current_price"])
	}

	// Step 5: Record 3 prices via pipeline endpoint (API key auth)
	now := time.Now().UTC()
	t1 := now.Add(-48 * time.Hour).Format(time.RFC3339)
	t2 := now.Add(-24 * time.Hour).Format(time.RFC3339)
	t3 := now.Format(time.RFC3339)

	pricesBody := fmt.Sprintf(`{"prices":[
		{"asset_id":%q,"price":175,"date":%q},
		{"asset_id":%q,"price":178,"date":%q},
		{"asset_id":%q,"price":180.5,"date":%q}
	]}`, assetID, t1, assetID, t2, assetID, t3)

	rec = app.pipelineRequest("POST", "/api/v1/pipeline/assets/prices", pricesBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 recording prices, got %d: %s", rec.Code, rec.Body.String())
	}
	priceResult := parseJSON(t, rec)
	if priceResult["recorded"].(float64) != 3 {
		t.Errorf("expected 3 prices recorded, got %.0f", priceResult["recorded"].(float64))
	}

	// Step 6: Get price history bounded by date range
	fromDate := now.Add(-36 * time.Hour).Format(time.RFC3339)
	rec = app.request("GET",
		fmt.Sprintf("/api/v1/assets/%s/prices?from=%s", assetID, fromDate), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting price history, got %d: %s", rec.Code, rec.Body.String())
	}
	history := parseJSON(t, rec)
	if history["total_items"].(float64) != 2 {
		t.Errorf("expected 2 price entries after from bound, got %.0f", history["total_items"].(float64))
	}

	// Step 7: Delete asset
	rec = app.request("DELETE", "/api/v1/assets/"+assetID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting asset, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/assets/"+assetID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestAssetFlow_DuplicateCode(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dupasset@test.com", "password123")

	app.createAsset(t, token, "MSFT", "Microsoft", "equity", 400)

	rec := app.request("POST", "/api/v1/assets",
		`{"code":"msft","name":"Microsoft again","type":"equity","currency":"USD"}`, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate code, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "DUPLICATE_ASSET" {
		t.Errorf("expected DUPLICATE_ASSET, got %v", errObj["code"])
	}
}

func TestAssetFlow_TypeFilter(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "typefilter@test.com", "password123")

	app.createAsset(t, token, "AAPL", "Apple", "equity", 175)
	app.createAsset(t, token, "UST10", "10Y Treasury", "fixed_income", 98)

	rec := app.request("GET", "/api/v1/assets?type=fixed_income", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 1 {
		t.Errorf("expected 1 fixed_income asset, got %.0f", result["total_items"].(float64))
	}
}

func TestAssetFlow_PipelineAuthRequired(t *testing.T) {
	app := setupApp(t)

	body := `{"prices":[{"asset_id":"0190a1b2-0000-7000-8000-000000000001","price":10,"date":"2026-01-01T00:00:00Z"}]}`

	// Pipeline endpoint without API key should return 401
	rec := app.request("POST", "/api/v1/pipeline/assets/prices", body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without API key, got %d: %s", rec.Code, rec.Body.String())
	}

	// Pipeline endpoint with wrong API key should return 401
	req := httptest.NewRequest("POST", "/api/v1/pipeline/assets/prices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "wrong-key")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong API key, got %d: %s", w.Code, w.Body.String())
	}
}

package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestPortfolioFlow_FullLifecycle(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "pflow@test.com", "password123")

	// Step 1: Create portfolio
	rec := app.request("POST", "/api/v1/portfolios",
		`{"name":"Retirement","description":"Long term holdings"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating portfolio, got %d: %s", rec.Code, rec.Body.String())
	}
	portfolio := parseJSON(t, rec)["portfolio"].(map[string]interface{})
	portfolioID := portfolio["id"].(string)
	if portfolio["name"] != "Retirement" {
		t.Errorf("expected name Retirement, got %v", portfolio["name"])
	}

	// Step 2: List portfolios, expect the single created portfolio
	rec = app.request("GET", "/api/v1/portfolios", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing portfolios, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Error("expected 1 portfolio in listing")
	}

	// Step 3: Record a buy and a sell
	app.createAsset(t, token, "AAPL", "Apple", "equity", 180)

	rec = app.request("POST", fmt.Sprintf("/api/v1/portfolios/%s/transactions", portfolioID),
		`{"asset_code":"AAPL","direction":"buy","quantity":10,"amount":1750,"trade_date":"2026-01-10","notes":"initial position"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating buy, got %d: %s", rec.Code, rec.Body.String())
	}
	buy := parseJSON(t, rec)["transaction"].(map[string]interface{})
	buyID := buy["id"].(string)

	rec = app.request("POST", fmt.Sprintf("/api/v1/portfolios/%s/transactions", portfolioID),
		`{"asset_code":"AAPL","direction":"sell","quantity":4,"amount":760,"trade_date":"2026-02-10"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating sell, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 4: List transactions in insertion order, buy first
	rec = app.request("GET", fmt.Sprintf("/api/v1/portfolios/%s/transactions", portfolioID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing transactions, got %d: %s", rec.Code, rec.Body.String())
	}
	listResult := parseJSON(t, rec)
	if listResult["total_items"].(float64) != 2 {
		t.Fatalf("expected 2 transactions, got %.0f", listResult["total_items"].(float64))
	}
	data := listResult["data"].([]interface{})
	firstTx := data[0].(map[string]interface{})
	if firstTx["direction"] != "buy" {
		t.Errorf("expected buy listed first, got %v", firstTx["direction"])
	}

	// Step 5: Filter by direction
	rec = app.request("GET",
		fmt.Sprintf("/api/v1/portfolios/%s/transactions?direction=sell", portfolioID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Error("expected 1 sell transaction")
	}

	// Step 6: Get single transaction
	rec = app.request("GET", "/api/v1/transactions/"+buyID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 getting transaction, got %d: %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if tx["quantity"].(float64) != 10 {
		t.Errorf("expected quantity 10, got %v", tx["quantity"])
	}

	// Step 7: Delete the buy
	rec = app.request("DELETE", "/api/v1/transactions/"+buyID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting transaction, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 8: Delete the portfolio; remaining transactions go with it
	rec = app.request("DELETE", "/api/v1/portfolios/"+portfolioID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting portfolio, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/portfolios/"+portfolioID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after portfolio delete, got %d", rec.Code)
	}
}

func TestPortfolioFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	ownerToken, _, _ := app.registerUser(t, "owner@test.com", "password123")
	otherToken, _, _ := app.registerUser(t, "other@test.com", "password123")

	portfolioID := app.createPortfolio(t, ownerToken, "Private")

	// Another user cannot see, modify, or trade in the portfolio.
	rec := app.request("GET", "/api/v1/portfolios/"+portfolioID, "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign portfolio, got %d", rec.Code)
	}

	rec = app.request("PUT", "/api/v1/portfolios/"+portfolioID, `{"name":"Hijacked"}`, otherToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 updating foreign portfolio, got %d", rec.Code)
	}

	rec = app.request("DELETE", "/api/v1/portfolios/"+portfolioID, "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting foreign portfolio, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/portfolios", "", otherToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["total_items"].(float64) != 0 {
		t.Error("expected empty portfolio listing for the other user")
	}
}

func TestPortfolioFlow_TransactionValidation(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "txval@test.com", "password123")
	portfolioID := app.createPortfolio(t, token, "Validation")
	app.createAsset(t, token, "AAPL", "Apple", "equity", 180)

	// Unknown asset code
	rec := app.request("POST", fmt.Sprintf("/api/v1/portfolios/%s/transactions", portfolioID),
		`{"asset_code":"GHOST","direction":"buy","quantity":1,"amount":100,"trade_date":"2026-01-10"}`, token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown asset, got %d: %s", rec.Code, rec.Body.String())
	}

	// Invalid direction rejected by binding
	rec = app.request("POST", fmt.Sprintf("/api/v1/portfolios/%s/transactions", portfolioID),
		`{"asset_code":"AAPL","direction":"hold","quantity":1,"amount":100,"trade_date":"2026-01-10"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid direction, got %d: %s", rec.Code, rec.Body.String())
	}

	// Zero quantity rejected by binding
	rec = app.request("POST", fmt.Sprintf("/api/v1/portfolios/%s/transactions", portfolioID),
		`{"asset_code":"AAPL","direction":"buy","quantity":0,"amount":100,"trade_date":"2026-01-10"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero quantity, got %d: %s", rec.Code, rec.Body.String())
	}
}

// Package valuation computes derived portfolio state from transaction
// ledgers and asset prices: per-asset holdings with realized and unrealized
// gains, aligned net-worth time series, month-over-month profit deltas, and
// period-return rankings. Every function is pure: inputs are read-only
// snapshots and no state survives a call.
//
// The package deliberately performs no input validation. Degenerate inputs
// (zero quantities, negative amounts) propagate arithmetically; guarding
// against them is the binding layer's responsibility.
package valuation

import (
	"plutus/internal/models"
)

// HoldingState classifies a holding by the sign of its running quantity.
type HoldingState string

const (
	HoldingStateLong   HoldingState = "long"
	HoldingStateShort  HoldingState = "short"
	HoldingStateClosed HoldingState = "closed"
)

// Holding is the derived position for one asset within a portfolio.
type Holding struct {
	AssetCode      string       `json:"asset_code"`
	State          HoldingState `json:"state"`
	Quantity       float64      `json:"quantity"`
	Cost           float64      `json:"cost"`
	AverageCost    float64      `json:"average_cost"`
	MarketValue    float64      `json:"market_value"`
	UnrealizedGain float64      `json:"unrealized_gain"`
}

// Summary aggregates a portfolio's holdings and totals.
type Summary struct {
	Holdings         []Holding `json:"holdings"`
	RealizedGain     float64   `json:"realized_gain"`
	UnrealizedGain   float64   `json:"unrealized_gain"`
	TotalValue       float64   `json:"total_value"`
	TotalCost        float64   `json:"total_cost"`
	TotalGain        float64   `json:"total_gain"`
	TotalGainPercent float64   `json:"total_gain_percent"`
}

// ComputeHoldings scans the transactions in the order given (no re-sorting
// by trade date) and aggregates them into per-asset holdings, then values
// each open holding against priceByCode.
//
// Transactions whose asset code has no entry in priceByCode are skipped
// entirely: the holding is not built and no error is raised.
//
// On a sell with zero running quantity, the average cost falls back to the
// sell's own unit price, which yields a zero realized-gain contribution for
// that sell. Callers rely on this degenerate output; do not change it.
func ComputeHoldings(txs []models.Transaction, priceByCode map[string]float64) Summary {
	byCode := make(map[string]*Holding, len(txs))
	order := make([]string, 0, len(txs))
	realized := 0.0

	for _, tx := range txs {
		if _, ok := priceByCode[tx.AssetCode]; !ok {
			continue
		}

		h, ok := byCode[tx.AssetCode]
		if !ok {
			h = &Holding{AssetCode: tx.AssetCode}
			byCode[tx.AssetCode] = h
			order = append(order, tx.AssetCode)
		}

		switch tx.Direction {
		case models.TradeDirectionBuy:
			h.Quantity += tx.Quantity
			h.Cost += tx.Amount
		case models.TradeDirectionSell:
			unitPrice := tx.Amount / tx.Quantity
			avgCost := unitPrice
			if h.Quantity > 0 {
				avgCost = h.Cost / h.Quantity
			}
			realized += (unitPrice - avgCost) * tx.Quantity
			h.Quantity -= tx.Quantity
			h.Cost -= avgCost * tx.Quantity
		}
	}

	summary := Summary{
		Holdings:     make([]Holding, 0, len(order)),
		RealizedGain: realized,
	}

	for _, code := range order {
		h := byCode[code]
		price := priceByCode[code]

		switch {
		case h.Quantity > 0:
			h.State = HoldingStateLong
			h.AverageCost = h.Cost / h.Quantity
			h.MarketValue = h.Quantity * price
			h.UnrealizedGain = (price - h.AverageCost) * h.Quantity
		case h.Quantity < 0:
			h.State = HoldingStateShort
			h.AverageCost = h.Cost / h.Quantity
			h.MarketValue = h.Quantity * price
			h.UnrealizedGain = (h.AverageCost - price) * (-h.Quantity)
		default:
			h.State = HoldingStateClosed
			h.Cost = 0
			h.AverageCost = 0
			h.MarketValue = 0
			h.UnrealizedGain = 0
		}

		if h.State != HoldingStateClosed {
			summary.TotalValue += h.MarketValue
			if h.Cost < 0 {
				summary.TotalCost += -h.Cost
			} else {
				summary.TotalCost += h.Cost
			}
			summary.UnrealizedGain += h.UnrealizedGain
		}

		summary.Holdings = append(summary.Holdings, *h)
	}

	summary.TotalGain = summary.RealizedGain + summary.UnrealizedGain
	if summary.TotalCost != 0 {
		summary.TotalGainPercent = summary.TotalGain / summary.TotalCost * 100
	}

	return summary
}

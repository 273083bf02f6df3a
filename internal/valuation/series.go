package valuation

import (
	"time"

	"plutus/internal/models"
)

// PriceSeries holds an asset's historical prices as parallel date/price
// sequences of equal length, ordered by date ascending and indexed
// positionally.
type PriceSeries struct {
	Dates  []time.Time
	Prices []float64
}

// Point is a single observation in a net-worth time series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// BuildNetWorthSeries produces one daily net-worth series per portfolio,
// keyed by portfolio name. The time axis is the longest date sequence among
// the assets referenced by any buy transaction across the given portfolios;
// series are merged by positional index, not by calendar date. Shorter
// series whose start dates differ are implicitly misaligned; consumers
// depend on the positional merge, so it must not be changed to calendar
// alignment.
//
// For each index on the axis, a portfolio's value is the sum of
// price[index] * quantity over its buy transactions whose asset has a price
// defined at that index. Sell transactions do not contribute.
func BuildNetWorthSeries(portfolios []models.Portfolio, series map[string]PriceSeries) map[string][]Point {
	// Pick the longest axis among buy-referenced assets.
	var axis PriceSeries
	for _, p := range portfolios {
		for _, tx := range p.Transactions {
			if tx.Direction != models.TradeDirectionBuy {
				continue
			}
			if s, ok := series[tx.AssetCode]; ok && len(s.Dates) > len(axis.Dates) {
				axis = s
			}
		}
	}

	result := make(map[string][]Point, len(portfolios))
	for _, p := range portfolios {
		points := make([]Point, 0, len(axis.Dates))
		for i, date := range axis.Dates {
			value := 0.0
			for _, tx := range p.Transactions {
				if tx.Direction != models.TradeDirectionBuy {
					continue
				}
				s, ok := series[tx.AssetCode]
				if !ok || i >= len(s.Prices) {
					continue
				}
				value += s.Prices[i] * tx.Quantity
			}
			points = append(points, Point{Time: date, Value: value})
		}
		result[p.Name] = points
	}

	return result
}

// MonthProfit is the profit delta for one calendar month.
type MonthProfit struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
}

const monthLabelLayout = "2006-01"

// MonthlyProfitDelta computes month-over-month profit deltas per asset type
// from a sequence of dated value observations. It generates monthsBack
// consecutive calendar-month labels ending at now's month; within each month
// only the latest-dated observation wins (comparison is by date, not by
// processing order). Months with no observation contribute a zero value.
// Profit for the first month is always 0 (no prior reference).
func MonthlyProfitDelta(logs []models.ProfitLog, monthsBack int, now time.Time) map[models.AssetType][]MonthProfit {
	if monthsBack <= 0 {
		return map[models.AssetType][]MonthProfit{}
	}

	labels := make([]string, monthsBack)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(monthsBack - 1), 0)
	for i := range labels {
		labels[i] = first.AddDate(0, i, 0).Format(monthLabelLayout)
	}

	type monthValue struct {
		value float64
		date  time.Time
		seen  bool
	}

	// assetType -> month label -> latest-dated value
	latest := make(map[models.AssetType]map[string]monthValue)
	for _, log := range logs {
		label := log.Date.Format(monthLabelLayout)
		months, ok := latest[log.AssetType]
		if !ok {
			months = make(map[string]monthValue)
			latest[log.AssetType] = months
		}
		if cur, ok := months[label]; !ok || log.Date.After(cur.date) {
			months[label] = monthValue{value: log.Value, date: log.Date, seen: true}
		}
	}

	result := make(map[models.AssetType][]MonthProfit, len(latest))
	for assetType, months := range latest {
		profits := make([]MonthProfit, monthsBack)
		prev := 0.0
		for i, label := range labels {
			value := months[label].value
			profits[i] = MonthProfit{Month: label}
			if i > 0 {
				profits[i].Profit = value - prev
			}
			prev = value
		}
		result[assetType] = profits
	}

	return result
}

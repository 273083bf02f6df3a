package valuation

import (
	"sort"

	"plutus/internal/models"
)

// Quote carries the data TopMovers needs for one asset: its identity and
// the ordered historical price sequence.
type Quote struct {
	Code   string
	Name   string
	Type   models.AssetType
	Prices []float64
}

// Ranked is one entry in a top-movers ranking.
type Ranked struct {
	AssetCode  string  `json:"asset_code"`
	Name       string  `json:"name"`
	Growth     float64 `json:"growth"`
	FirstPrice float64 `json:"first_price"`
	LastPrice  float64 `json:"last_price"`
}

// Movers holds the ranked top movers partitioned by asset class.
type Movers struct {
	TopStocks []Ranked `json:"top_stocks"`
	TopBonds  []Ranked `json:"top_bonds"`
}

// TopMovers computes the period return (last/first - 1) for every asset with
// at least two price observations, partitions equities and fixed-income
// assets, and returns each partition sorted by growth descending, truncated
// to limit. Assets with fewer than two observations are excluded, not
// zero-ranked. Cash assets are not ranked.
func TopMovers(quotes []Quote, limit int) Movers {
	var stocks, bonds []Ranked

	for _, q := range quotes {
		if len(q.Prices) < 2 {
			continue
		}
		first := q.Prices[0]
		last := q.Prices[len(q.Prices)-1]
		r := Ranked{
			AssetCode:  q.Code,
			Name:       q.Name,
			Growth:     last/first - 1,
			FirstPrice: first,
			LastPrice:  last,
		}
		switch q.Type {
		case models.AssetTypeEquity:
			stocks = append(stocks, r)
		case models.AssetTypeFixedIncome:
			bonds = append(bonds, r)
		}
	}

	return Movers{
		TopStocks: rank(stocks, limit),
		TopBonds:  rank(bonds, limit),
	}
}

func rank(entries []Ranked, limit int) []Ranked {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Growth > entries[j].Growth
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []Ranked{}
	}
	return entries
}

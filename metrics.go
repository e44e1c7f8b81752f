package bricks

import "github.com/shopspring/decimal"

// Metrics are the figures derived from an Item. They are never stored.
type Metrics struct {
	// Delta is the gain (or loss) of the current price over the purchase price.
	Delta float64 `json:"delta"`
	// ROI is the return on investment in percent, nil without a purchase price
	// or when it is too large to be represented.
	ROI *float64 `json:"roi"`
	// TotalScore is the sum of the four ranks.
	TotalScore int `json:"totalScore"`
}

var hundred = decimal.NewFromInt(100)

// ComputeMetrics returns the metrics of it.
//
// Prices are combined as exact decimals, so that 150.1 - 100 is 50.1.
// ROI is left nil rather than infinite when a tiny purchase price makes it
// overflow a float64.
func ComputeMetrics(it Item) Metrics {
	purchase := price(it.PurchasePrice)
	delta := price(it.CurrentPrice).Sub(purchase)

	m := Metrics{
		Delta:      delta.InexactFloat64(),
		TotalScore: it.RankA + it.RankB + it.RankC + it.RankD,
	}
	if purchase.IsPositive() {
		if roi := delta.Div(purchase).Mul(hundred).InexactFloat64(); finite(roi) {
			m.ROI = &roi
		}
	}
	return m
}

// price converts f to a decimal, NaN and infinities count as 0.
func price(f float64) decimal.Decimal {
	if !finite(f) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

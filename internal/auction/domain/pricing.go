package domain

import "github.com/shopspring/decimal"

var (
	minStepFloor = decimal.NewFromInt(1)              // minimum raise is $1.00
	minStepRate  = decimal.RequireFromString("0.05") // or 5% of current price
	cents        = decimal.NewFromInt(100)
)

// MinimumBid returns the suggested next bid for a given current price:
// current price plus the larger of 5% or 1.00, ceiled to the cent. This is a
// suggestion for callers only; acceptance requires just strictly-greater-than
// the current price.
func MinimumBid(currentPrice float64) float64 {
	price := decimal.NewFromFloat(currentPrice)
	step := decimal.Max(price.Mul(minStepRate), minStepFloor)
	min := price.Add(step).Mul(cents).Ceil().Div(cents)
	f, _ := min.Float64()
	return f
}

// bidIncrementTiers maps price ceilings to quick-bid step sizes.
var bidIncrementTiers = []struct {
	below float64
	step  float64
}{
	{10, 0.25},
	{50, 0.50},
	{100, 1.00},
	{500, 2.50},
	{1000, 5.00},
	{5000, 10.00},
	{10000, 25.00},
}

// BidIncrement returns the quick-bid step for the current price. Used only
// for suggested amounts in the UI; it has no bearing on acceptance validity.
func BidIncrement(currentPrice float64) float64 {
	for _, tier := range bidIncrementTiers {
		if currentPrice < tier.below {
			return tier.step
		}
	}
	return 50.00
}

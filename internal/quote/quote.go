package quote

import "github.com/shopspring/decimal"

// Quote is the normalized per-instrument shape shared by all fetchers.
// Values are derived from upstream raw fields on every fetch and never stored.
type Quote struct {
	Price         float64
	ChangeAmount  float64
	ChangePercent float64
}

// New rounds the raw fields to two places.
func New(price, changePercent, changeAmount float64) Quote {
	return Quote{
		Price:         Round2(price),
		ChangePercent: Round2(changePercent),
		ChangeAmount:  Round2(changeAmount),
	}
}

// FromPrevClose derives the change fields from a price and the previous
// session's close. A zero or negative previous close yields a zero percent
// change rather than a division by zero.
func FromPrevClose(price, prevClose float64) Quote {
	amount := price - prevClose
	percent := 0.0
	if prevClose > 0 {
		percent = amount / prevClose * 100
	}
	return New(price, percent, amount)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

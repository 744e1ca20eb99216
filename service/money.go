package service

import "github.com/shopspring/decimal"

// roundTo2Decimals rounds half-up to the cent. Going through decimal keeps
// values like 2.675 from rounding down on their binary representation.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// roundToDollar rounds half-up to whole dollars.
func roundToDollar(value float64) float64 {
	return decimal.NewFromFloat(value).Round(0).InexactFloat64()
}

// billingUnits counts the billing units of size unit in value, rounding up:
// $52,000 in $200 units is 260, $52,001 is 261.
func billingUnits(value, unit float64) float64 {
	if value <= 0 {
		return 0
	}
	return decimal.NewFromFloat(value).Div(decimal.NewFromFloat(unit)).Ceil().InexactFloat64()
}

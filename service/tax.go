package service

import "math"

// IncomeTax evaluates a progressive scale given in ascending order. Only the
// bracket containing income counts: its Base already carries the tax of every
// bracket below it, so earlier matches are overwritten rather than summed.
// Income at or below the lowest bound is untaxed.
func IncomeTax(income float64, brackets []TaxBracket) float64 {
	var tax float64
	for _, b := range brackets {
		if income > b.Lower {
			tax = b.Base + (math.Min(income, b.Upper)-b.Lower)*b.Rate
		}
	}
	return tax
}

// IncomeTaxSavings is the tax no longer paid once preTaxDeduction is packaged
// out of income. A deduction larger than income saves the whole tax bill.
func IncomeTaxSavings(income, preTaxDeduction float64, brackets []TaxBracket) float64 {
	return IncomeTax(income, brackets) - IncomeTax(income-preTaxDeduction, brackets)
}

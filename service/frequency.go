package service

import (
	"fmt"

	"novated-lease/domain"
)

var periodsPerYear = map[domain.Frequency]int{
	domain.FrequencyWeekly:      52,
	domain.FrequencyFortnightly: 26,
	domain.FrequencyMonthly:     12,
}

// deferredTwoMonthOffsets approximates "two months" in each cadence. The
// values are fixed, not derived from periodsPerYear.
var deferredTwoMonthOffsets = map[domain.Frequency]int{
	domain.FrequencyWeekly:      8,
	domain.FrequencyFortnightly: 4,
	domain.FrequencyMonthly:     2,
}

// PeriodsPerYear returns the number of pay periods in a year, falling back to
// monthly for an unknown frequency.
func PeriodsPerYear(freq domain.Frequency) (int, []domain.Warning) {
	w := newWarningSink(nil)
	n := periodsFor(freq, w)
	return n, w.warnings()
}

func periodsFor(freq domain.Frequency, w *warningSink) int {
	if n, ok := periodsPerYear[freq]; ok {
		return n
	}
	w.add("unknown_frequency", fmt.Sprintf("unknown frequency %q, using monthly", freq))
	return periodsPerYear[domain.FrequencyMonthly]
}

// ConvertFrequency rescales a periodic amount from one cadence to another.
func ConvertFrequency(amount float64, from, to domain.Frequency) float64 {
	w := newWarningSink(nil)
	return convertFrequency(amount, from, to, w)
}

func convertFrequency(amount float64, from, to domain.Frequency, w *warningSink) float64 {
	return amount * float64(periodsFor(from, w)) / float64(periodsFor(to, w))
}

// TotalPayments counts the payments made over termYears at the given
// frequency. A deferred_2 structure drops roughly two months of payments.
func TotalPayments(termYears int, freq domain.Frequency, structure domain.PaymentStructure) int {
	w := newWarningSink(nil)
	return totalPayments(termYears, freq, structure, w)
}

func totalPayments(termYears int, freq domain.Frequency, structure domain.PaymentStructure, w *warningSink) int {
	perYear := periodsFor(freq, w)
	if _, ok := periodsPerYear[freq]; !ok {
		freq = domain.FrequencyMonthly
	}

	base := termYears * perYear
	switch structure {
	case domain.StructureFullTerm, "":
		return base
	case domain.StructureDeferred2:
		return base - deferredTwoMonthOffsets[freq]
	default:
		w.add("unknown_payment_structure", fmt.Sprintf("unknown payment structure %q, using full_term", structure))
		return base
	}
}

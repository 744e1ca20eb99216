package service

import (
	"math"

	"novated-lease/domain"
)

// stampDutyFunc returns unrounded duty on a GST-inclusive price.
type stampDutyFunc func(price float64, attrs domain.VehicleAttrs) float64

var stampDutySchedules = map[domain.State]stampDutyFunc{
	domain.StateNSW: nswStampDuty,
	domain.StateVIC: vicStampDuty,
	domain.StateQLD: qldStampDuty,
	domain.StateWA:  waStampDuty,
	domain.StateACT: actStampDuty,
	domain.StateSA:  flatStampDuty(0.04),
	domain.StateTAS: flatStampDuty(0.04),
	domain.StateNT:  flatStampDuty(0.03),
}

type priceBand struct {
	Upper   float64
	PerUnit float64
}

// VIC charges per $200 or part. Passenger vehicles move up a band over the
// luxury threshold and the higher band applies to the whole value.
const (
	vicBillingUnit     = 200.0
	vicZeroEmissionFee = 8.40
)

var vicPassengerBands = []priceBand{
	{Upper: 80_567, PerUnit: 8.40},
	{Upper: 100_000, PerUnit: 10.40},
	{Upper: 150_000, PerUnit: 14.00},
	{Upper: math.Inf(1), PerUnit: 18.00},
}

func vicStampDuty(price float64, attrs domain.VehicleAttrs) float64 {
	units := billingUnits(price, vicBillingUnit)
	if attrs.VehicleType == domain.VehicleEV {
		return units * vicZeroEmissionFee
	}
	for _, b := range vicPassengerBands {
		if price <= b.Upper {
			return units * b.PerUnit
		}
	}
	return 0
}

// NSW charges $3 per $100 or part up to $44,999 and $1,350 plus $5 per $100
// or part over $45,000.
const (
	nswBillingUnit  = 100.0
	nswLowerRate    = 3.0
	nswUpperRate    = 5.0
	nswThreshold    = 45_000.0
	nswThresholdFee = 1_350.0
)

func nswStampDuty(price float64, _ domain.VehicleAttrs) float64 {
	if price < nswThreshold {
		return billingUnits(price, nswBillingUnit) * nswLowerRate
	}
	return nswThresholdFee + billingUnits(price-nswThreshold, nswBillingUnit)*nswUpperRate
}

// QLD rates are per $100 by cylinder count, with an extra $2 per $100 on the
// whole value of vehicles over $100,000.
const (
	qldHighValueThreshold = 100_000.0
	qldHighValueSurcharge = 2.0
)

func qldStampDuty(price float64, attrs domain.VehicleAttrs) float64 {
	var rate float64
	switch cyl := cylindersOrDefault(attrs.Cylinders); {
	case attrs.VehicleType == domain.VehicleEV || attrs.VehicleType == domain.VehicleHybrid:
		rate = 2.0
	case cyl <= 4:
		rate = 3.0
	case cyl <= 6:
		rate = 3.5
	default:
		rate = 4.0
	}
	if price > qldHighValueThreshold {
		rate += qldHighValueSurcharge
	}
	return price / 100 * rate
}

// WA scales the rate linearly from 2.75% to 6.5% between $25,000 and $50,000.
func waStampDuty(price float64, _ domain.VehicleAttrs) float64 {
	switch {
	case price <= 25_000:
		return price * 0.0275
	case price <= 50_000:
		ratePct := 2.75 + (price-25_000)/6_666.66
		return price * ratePct / 100
	default:
		return price * 0.065
	}
}

// ACT charges a base rate up to $45,000 and a surcharge on the excess.
// Zero-emission vehicles are exempt.
func actStampDuty(price float64, attrs domain.VehicleAttrs) float64 {
	if attrs.VehicleType == domain.VehicleEV {
		return 0
	}
	if price <= 45_000 {
		return price * 0.03
	}
	return 1_350 + (price-45_000)*0.05
}

func flatStampDuty(rate float64) stampDutyFunc {
	return func(price float64, _ domain.VehicleAttrs) float64 {
		return price * rate
	}
}

func cylindersOrDefault(c int) int {
	if c <= 0 {
		return 4
	}
	return c
}

package service

import (
	"math"

	"novated-lease/domain"
)

// registrationFunc lists the 12-month registration components for a state.
type registrationFunc func(attrs domain.VehicleAttrs) []domain.FeeComponent

var registrationSchedules = map[domain.State]registrationFunc{
	domain.StateVIC: vicRegistration,
	domain.StateNSW: nswRegistration,
	domain.StateQLD: qldRegistration,
	domain.StateSA:  saRegistration,
	domain.StateWA:  waRegistration,
	domain.StateTAS: tasRegistration,
	domain.StateACT: flatRegistration(1_050),
	domain.StateNT:  flatRegistration(800),
}

const defaultTareKg = 1_500

type weightBand struct {
	MaxKg int
	Fee   float64
}

type cylinderBand struct {
	MaxCylinders int
	Fee          float64
}

var vicTACCharge = map[domain.RegistrationZone]float64{
	domain.ZoneMetro:    586.60,
	domain.ZoneRegional: 495.80,
	domain.ZoneRural:    399.20,
}

const vicRegistrationFee = 316.90

func vicRegistration(attrs domain.VehicleAttrs) []domain.FeeComponent {
	return []domain.FeeComponent{
		{Name: "Registration fee", Amount: vicRegistrationFee},
		{Name: "TAC charge", Amount: vicTACCharge[attrs.Zone]},
	}
}

var nswWeightTax = []weightBand{
	{MaxKg: 975, Fee: 352.00},
	{MaxKg: 1_154, Fee: 380.00},
	{MaxKg: 1_504, Fee: 436.00},
	{MaxKg: 2_504, Fee: 581.00},
	{MaxKg: math.MaxInt32, Fee: 882.00},
}

const (
	nswAdminFee = 74.00
	nswCTP      = 550.00
)

func nswRegistration(attrs domain.VehicleAttrs) []domain.FeeComponent {
	return []domain.FeeComponent{
		{Name: "Motor vehicle tax", Amount: weightFee(nswWeightTax, attrs.TareKg)},
		{Name: "Administration fee", Amount: nswAdminFee},
		{Name: "CTP insurance", Amount: nswCTP},
	}
}

// Electric vehicles are charged at the 1-3 cylinder rate in QLD.
var qldCylinderFees = []cylinderBand{
	{MaxCylinders: 3, Fee: 366.75},
	{MaxCylinders: 4, Fee: 444.35},
	{MaxCylinders: 6, Fee: 688.90},
	{MaxCylinders: 8, Fee: 938.10},
	{MaxCylinders: math.MaxInt32, Fee: 1_077.40},
}

const qldCTP = 386.20

func qldRegistration(attrs domain.VehicleAttrs) []domain.FeeComponent {
	cyl := cylindersOrDefault(attrs.Cylinders)
	if attrs.VehicleType == domain.VehicleEV {
		cyl = 1
	}
	return []domain.FeeComponent{
		{Name: "Registration fee", Amount: cylinderFee(qldCylinderFees, cyl)},
		{Name: "CTP insurance", Amount: qldCTP},
	}
}

var saCylinderFees = []cylinderBand{
	{MaxCylinders: 4, Fee: 160.00},
	{MaxCylinders: 6, Fee: 330.00},
	{MaxCylinders: math.MaxInt32, Fee: 485.00},
}

var saCTPByRegion = map[domain.RegistrationZone]float64{
	domain.ZoneMetro:    370.00,
	domain.ZoneRegional: 310.00,
	domain.ZoneRural:    310.00,
}

func saRegistration(attrs domain.VehicleAttrs) []domain.FeeComponent {
	cyl := cylindersOrDefault(attrs.Cylinders)
	if attrs.VehicleType == domain.VehicleEV {
		cyl = 1
	}
	return []domain.FeeComponent{
		{Name: "Registration fee", Amount: cylinderFee(saCylinderFees, cyl)},
		{Name: "CTP insurance", Amount: saCTPByRegion[attrs.Zone]},
	}
}

// WA licence fee is charged per 100kg of tare or part thereof.
const (
	waLicenceFeePer100Kg = 29.86
	waRecordingFee       = 15.75
	waInsurance          = 477.29
)

func waRegistration(attrs domain.VehicleAttrs) []domain.FeeComponent {
	units := billingUnits(float64(attrs.TareKg), 100)
	return []domain.FeeComponent{
		{Name: "Licence fee", Amount: roundTo2Decimals(units * waLicenceFeePer100Kg)},
		{Name: "Recording fee", Amount: waRecordingFee},
		{Name: "Motor injury insurance", Amount: waInsurance},
	}
}

var tasCylinderFees = []cylinderBand{
	{MaxCylinders: 4, Fee: 158.00},
	{MaxCylinders: 6, Fee: 188.00},
	{MaxCylinders: math.MaxInt32, Fee: 218.00},
}

var tasMotorTax = []weightBand{
	{MaxKg: 1_500, Fee: 183.00},
	{MaxKg: 2_000, Fee: 240.00},
	{MaxKg: math.MaxInt32, Fee: 310.00},
}

const tasMAIB = 420.00

func tasRegistration(attrs domain.VehicleAttrs) []domain.FeeComponent {
	return []domain.FeeComponent{
		{Name: "Registration fee", Amount: cylinderFee(tasCylinderFees, cylindersOrDefault(attrs.Cylinders))},
		{Name: "Motor tax", Amount: weightFee(tasMotorTax, attrs.TareKg)},
		{Name: "MAIB premium", Amount: tasMAIB},
	}
}

func flatRegistration(amount float64) registrationFunc {
	return func(domain.VehicleAttrs) []domain.FeeComponent {
		return []domain.FeeComponent{{Name: "Registration estimate", Amount: amount}}
	}
}

func weightFee(bands []weightBand, kg int) float64 {
	for _, b := range bands {
		if kg <= b.MaxKg {
			return b.Fee
		}
	}
	return bands[len(bands)-1].Fee
}

func cylinderFee(bands []cylinderBand, cylinders int) float64 {
	for _, b := range bands {
		if cylinders <= b.MaxCylinders {
			return b.Fee
		}
	}
	return bands[len(bands)-1].Fee
}

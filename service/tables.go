package service

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"novated-lease/domain"
)

const TablesVersion = "2024-25.1"

// TaxBracket is one row of a progressive scale. Base is the tax already
// accrued on all income up to Lower.
type TaxBracket struct {
	Lower float64
	Upper float64
	Rate  float64
	Base  float64
}

type VehicleProfile struct {
	CostMultiplier float64
	LitresPer100Km float64 // zero for electric vehicles
}

// Tables is a read-only snapshot of every lookup table used by the
// calculators. Build a new snapshot instead of mutating one in place.
type Tables struct {
	Version             string
	PrimaryBalloon      map[int]float64 // fraction of NAF
	BYORatePct          map[int]float64
	BYOBalloonPct       map[int]float64
	SimpleStampDutyRate map[domain.State]float64
	TaxBrackets         []TaxBracket
	Vehicles            map[domain.FuelType]VehicleProfile
}

var defaultTables = DefaultTables()

// DefaultTables returns the compiled-in tables for the current financial year.
func DefaultTables() *Tables {
	return &Tables{
		Version: TablesVersion,
		PrimaryBalloon: map[int]float64{
			1: 0.6563,
			2: 0.5625,
			3: 0.4688,
			4: 0.3750,
			5: 0.2813,
		},
		BYORatePct: map[int]float64{
			1: 9.50,
			2: 8.00,
			3: 7.50,
			4: 7.35,
			5: 7.30,
		},
		BYOBalloonPct: map[int]float64{
			1: 65.00,
			2: 56.25,
			3: 46.88,
			4: 37.50,
			5: 28.13,
		},
		SimpleStampDutyRate: map[domain.State]float64{
			domain.StateNSW: 0.050,
			domain.StateVIC: 0.042,
			domain.StateQLD: 0.035,
			domain.StateSA:  0.040,
			domain.StateWA:  0.065,
			domain.StateTAS: 0.040,
			domain.StateACT: 0.030,
			domain.StateNT:  0.030,
		},
		TaxBrackets: []TaxBracket{
			{Lower: 0, Upper: 18_200, Rate: 0, Base: 0},
			{Lower: 18_200, Upper: 45_000, Rate: 0.16, Base: 0},
			{Lower: 45_000, Upper: 135_000, Rate: 0.30, Base: 4_288},
			{Lower: 135_000, Upper: 190_000, Rate: 0.37, Base: 31_288},
			{Lower: 190_000, Upper: math.Inf(1), Rate: 0.45, Base: 51_638},
		},
		Vehicles: map[domain.FuelType]VehicleProfile{
			domain.FuelEV:       {CostMultiplier: 0.85},
			domain.FuelHybrid:   {CostMultiplier: 0.95, LitresPer100Km: 4.5},
			domain.FuelSUV:      {CostMultiplier: 1.05, LitresPer100Km: 8.5},
			domain.FuelUte:      {CostMultiplier: 1.10, LitresPer100Km: 9.5},
			domain.FuelLargeUte: {CostMultiplier: 1.15, LitresPer100Km: 11.5},
			domain.FuelHatch:    {CostMultiplier: 0.90, LitresPer100Km: 6.5},
			domain.FuelSedan:    {CostMultiplier: 1.00, LitresPer100Km: 7.0},
		},
	}
}

func (t *Tables) primaryBalloon(termYears int, w *warningSink) float64 {
	if v, ok := t.PrimaryBalloon[termYears]; ok {
		return v
	}
	w.add("unknown_term", fmt.Sprintf("no residual for %d year term, using %d year value", termYears, DefaultTermYears))
	return t.PrimaryBalloon[DefaultTermYears]
}

func (t *Tables) byoRate(termYears int, w *warningSink) float64 {
	if v, ok := t.BYORatePct[termYears]; ok {
		return v
	}
	w.add("unknown_term", fmt.Sprintf("no BYO rate for %d year term, using %d year value", termYears, DefaultTermYears))
	return t.BYORatePct[DefaultTermYears]
}

func (t *Tables) byoBalloon(termYears int, w *warningSink) float64 {
	if v, ok := t.BYOBalloonPct[termYears]; ok {
		return v
	}
	w.add("unknown_term", fmt.Sprintf("no BYO balloon for %d year term, using %d year value", termYears, DefaultTermYears))
	return t.BYOBalloonPct[DefaultTermYears]
}

func (t *Tables) simpleStampDutyRate(state domain.State, w *warningSink) float64 {
	if v, ok := t.SimpleStampDutyRate[state]; ok {
		return v
	}
	w.add("unknown_state", fmt.Sprintf("unknown state %q, using VIC stamp duty rate", state))
	return t.SimpleStampDutyRate[domain.StateVIC]
}

func (t *Tables) vehicle(fuel domain.FuelType, w *warningSink) VehicleProfile {
	if v, ok := t.Vehicles[fuel]; ok {
		return v
	}
	w.add("unknown_fuel_type", fmt.Sprintf("unknown fuel type %q, using sedan consumption and a 1.0 multiplier", fuel))
	return VehicleProfile{CostMultiplier: 1.0, LitresPer100Km: t.Vehicles[domain.FuelSedan].LitresPer100Km}
}

// warningSink collects the warnings of one calculation and logs them.
type warningSink struct {
	logger *zap.Logger
	list   []domain.Warning
}

func newWarningSink(logger *zap.Logger) *warningSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &warningSink{logger: logger}
}

func (w *warningSink) add(code, message string) {
	for _, existing := range w.list {
		if existing.Code == code && existing.Message == message {
			return
		}
	}
	w.list = append(w.list, domain.Warning{Code: code, Message: message})
	w.logger.Warn("calculation warning", zap.String("code", code), zap.String("detail", message))
}

func (w *warningSink) warnings() []domain.Warning {
	if len(w.list) == 0 {
		return nil
	}
	out := make([]domain.Warning, len(w.list))
	copy(out, w.list)
	return out
}

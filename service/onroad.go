package service

import (
	"fmt"

	"go.uber.org/zap"

	"novated-lease/domain"
)

// OnRoadEstimator exposes the two on-road cost models. Simple is the flat
// per-state rate used by the lease calculator; Detailed follows each state's
// own duty and registration schedules and serves vehicle browsing and BYO
// quotes. The two give different numbers on purpose and are never merged.
type OnRoadEstimator struct {
	tables *Tables
	logger *zap.Logger
}

func NewOnRoadEstimator(tables *Tables, logger *zap.Logger) *OnRoadEstimator {
	if tables == nil {
		tables = defaultTables
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnRoadEstimator{tables: tables, logger: logger}
}

// Simple applies one flat stamp duty rate per state and the base
// registration everywhere.
func (e *OnRoadEstimator) Simple(basePrice float64, state domain.State) (domain.OnRoadCosts, []domain.Warning) {
	w := newWarningSink(e.logger)
	costs := e.simple(basePrice, state, w)
	return costs, w.warnings()
}

func (e *OnRoadEstimator) simple(basePrice float64, state domain.State, w *warningSink) domain.OnRoadCosts {
	rate := e.tables.simpleStampDutyRate(state, w)
	stampDuty := roundToDollar(basePrice * rate)
	return onRoadTotals(basePrice, stampDuty, BaseRegistration)
}

// simpleBaseFromDriveAway backs the vehicle price out of a drive-away figure
// priced with the simple model.
func (e *OnRoadEstimator) simpleBaseFromDriveAway(driveAway float64, state domain.State, w *warningSink) float64 {
	rate := e.tables.simpleStampDutyRate(state, w)
	return (driveAway - BaseRegistration) / (1 + rate)
}

// Detailed prices stamp duty and registration with the state schedules.
func (e *OnRoadEstimator) Detailed(basePrice float64, state domain.State, attrs domain.VehicleAttrs) domain.DetailedOnRoadCosts {
	w := newWarningSink(e.logger)
	state = e.knownState(state, w)
	attrs = e.normaliseAttrs(attrs, w)

	stampDuty := roundToDollar(stampDutySchedules[state](basePrice, attrs))
	components := registrationSchedules[state](attrs)
	var registration float64
	for _, c := range components {
		registration += c.Amount
	}

	return domain.DetailedOnRoadCosts{
		OnRoadCosts:            onRoadTotals(basePrice, stampDuty, roundToDollar(registration)),
		RegistrationComponents: components,
		Warnings:               w.warnings(),
	}
}

// StampDuty returns the detailed-model duty on its own.
func (e *OnRoadEstimator) StampDuty(price float64, state domain.State, vehicleType domain.VehicleType) (float64, []domain.Warning) {
	w := newWarningSink(e.logger)
	duty := e.stampDuty(price, state, domain.VehicleAttrs{VehicleType: vehicleType}, w)
	return duty, w.warnings()
}

func (e *OnRoadEstimator) stampDuty(price float64, state domain.State, attrs domain.VehicleAttrs, w *warningSink) float64 {
	state = e.knownState(state, w)
	attrs = e.normaliseAttrs(attrs, w)
	return roundToDollar(stampDutySchedules[state](price, attrs))
}

func (e *OnRoadEstimator) knownState(state domain.State, w *warningSink) domain.State {
	if _, ok := stampDutySchedules[state]; ok {
		return state
	}
	w.add("unknown_state", fmt.Sprintf("unknown state %q, using VIC schedules", state))
	return domain.StateVIC
}

func (e *OnRoadEstimator) normaliseAttrs(attrs domain.VehicleAttrs, w *warningSink) domain.VehicleAttrs {
	switch attrs.VehicleType {
	case domain.VehiclePetrol, domain.VehicleHybrid, domain.VehicleEV:
	case "":
		attrs.VehicleType = domain.VehiclePetrol
	default:
		w.add("unknown_vehicle_type", fmt.Sprintf("unknown vehicle type %q, treating as petrol", attrs.VehicleType))
		attrs.VehicleType = domain.VehiclePetrol
	}
	switch attrs.Zone {
	case domain.ZoneMetro, domain.ZoneRegional, domain.ZoneRural:
	case "":
		attrs.Zone = domain.ZoneMetro
	default:
		w.add("unknown_zone", fmt.Sprintf("unknown registration zone %q, using metro", attrs.Zone))
		attrs.Zone = domain.ZoneMetro
	}
	if attrs.TareKg <= 0 {
		attrs.TareKg = defaultTareKg
	}
	return attrs
}

func onRoadTotals(basePrice, stampDuty, registration float64) domain.OnRoadCosts {
	total := stampDuty + registration
	return domain.OnRoadCosts{
		Registration:   registration,
		StampDuty:      stampDuty,
		Total:          total,
		DriveAwayPrice: roundTo2Decimals(basePrice + total),
	}
}

// Estimate validates a browsing request and prices it with the detailed model.
func (e *OnRoadEstimator) Estimate(input domain.OnRoadEstimateInput) (domain.DetailedOnRoadCosts, error) {
	if input.Price <= 0 {
		return domain.DetailedOnRoadCosts{}, invalidInput("price must be positive, got %.2f", input.Price)
	}
	if input.Price > MaxVehiclePrice {
		return domain.DetailedOnRoadCosts{}, invalidInput("price exceeds the maximum of $%.2f", MaxVehiclePrice)
	}
	if input.Attrs.Cylinders < 0 || input.Attrs.TareKg < 0 {
		return domain.DetailedOnRoadCosts{}, invalidInput("cylinders and tare must not be negative")
	}
	return e.Detailed(input.Price, input.State, input.Attrs), nil
}

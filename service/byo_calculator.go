package service

import (
	"fmt"

	"go.uber.org/zap"

	"novated-lease/domain"
)

// BYOCalculator prices finance sourced outside the lessor's panel. It has its
// own rate and balloon tables and finances the establishment fee interest
// free.
type BYOCalculator struct {
	tables *Tables
	onRoad *OnRoadEstimator
	logger *zap.Logger
}

func NewBYOCalculator(tables *Tables, logger *zap.Logger) *BYOCalculator {
	if tables == nil {
		tables = defaultTables
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BYOCalculator{
		tables: tables,
		onRoad: NewOnRoadEstimator(tables, logger),
		logger: logger,
	}
}

// Calculate prices the BYO quote. Overrides replace the financed stamp duty
// and registration, but the automatic estimates are always returned too.
func (c *BYOCalculator) Calculate(input domain.BYOInput) (domain.BYOResult, error) {
	if input.VehicleValue <= 0 {
		return domain.BYOResult{}, invalidInput("vehicle value must be positive, got %.2f", input.VehicleValue)
	}
	if input.VehicleValue > MaxVehiclePrice {
		return domain.BYOResult{}, invalidInput("vehicle value exceeds the maximum of $%.2f", MaxVehiclePrice)
	}
	if input.TermYears < MinTermYears || input.TermYears > MaxTermYears {
		return domain.BYOResult{}, invalidInput("term %d outside %d to %d years", input.TermYears, MinTermYears, MaxTermYears)
	}

	w := newWarningSink(c.logger.With(zap.String("calculator", "byo")))

	vehicleExGST := roundToDollar(input.VehicleValue / (1 + GSTRate))
	stampDutyAuto := c.onRoad.stampDuty(input.VehicleValue, input.State, domain.VehicleAttrs{VehicleType: input.VehicleType}, w)
	registrationAuto := BaseRegistration

	stampDuty := override(input.StampDutyOverride, stampDutyAuto, "stamp duty", w)
	registration := override(input.RegistrationOverride, registrationAuto, "registration", w)

	totalFinanced := vehicleExGST + stampDuty + registration + BYOEstablishmentFee
	balloonPct := c.tables.byoBalloon(input.TermYears, w)
	balloon := roundTo2Decimals(totalFinanced * balloonPct / 100)
	rate := c.tables.byoRate(input.TermYears, w)

	req := AnnuityRequest{
		Principal:        totalFinanced,
		AnnualRatePct:    rate,
		TermMonths:       input.TermYears * 12,
		DeferMonths:      BYODeferralMonths,
		BalloonValue:     balloon,
		EstablishmentFee: BYOEstablishmentFee,
	}
	solved, err := SolveAnnuity(req)
	if err != nil {
		return domain.BYOResult{}, err
	}

	result := domain.BYOResult{
		VehicleExGST:     vehicleExGST,
		StampDuty:        stampDuty,
		StampDutyAuto:    stampDutyAuto,
		Registration:     registration,
		RegistrationAuto: registrationAuto,
		EstablishmentFee: BYOEstablishmentFee,
		TotalFinanced:    roundTo2Decimals(totalFinanced),
		BalloonPercent:   balloonPct,
		BalloonAmount:    balloon,
		AnnualRate:       rate,
		MonthlyPayment:   solved.PeriodicPayment,
		NPayments:        solved.NPayments,
	}

	if input.IncludeSchedule {
		if result.Schedule, err = Schedule(req); err != nil {
			return domain.BYOResult{}, err
		}
	}

	result.Warnings = w.warnings()
	return result, nil
}

// override returns the caller's figure when present and non-negative.
func override(value *float64, auto float64, name string, w *warningSink) float64 {
	if value == nil {
		return auto
	}
	if *value < 0 {
		w.add("negative_override", fmt.Sprintf("ignoring negative %s override %.2f, using estimate %.2f", name, *value, auto))
		return auto
	}
	return *value
}

// Compare converts the BYO monthly payment to the existing quote's frequency
// and totals the saving over the existing quote's payment count.
func (c *BYOCalculator) Compare(byo domain.BYOResult, existing domain.ExistingQuote) (domain.ComparisonResult, error) {
	if existing.ExistingPayment <= 0 {
		return domain.ComparisonResult{}, invalidInput("existing payment must be positive, got %.2f", existing.ExistingPayment)
	}
	if existing.ExistingTermYears < MinTermYears || existing.ExistingTermYears > MaxTermYears {
		return domain.ComparisonResult{}, invalidInput("existing term %d outside %d to %d years",
			existing.ExistingTermYears, MinTermYears, MaxTermYears)
	}

	w := newWarningSink(c.logger.With(zap.String("calculator", "comparison")))

	byoPayment := convertFrequency(byo.MonthlyPayment, domain.FrequencyMonthly, existing.ExistingFrequency, w)
	savingPerPay := existing.ExistingPayment - byoPayment
	count := totalPayments(existing.ExistingTermYears, existing.ExistingFrequency, existing.PaymentStructure, w)

	return domain.ComparisonResult{
		BYOPayment:       roundTo2Decimals(byoPayment),
		ExistingPayment:  existing.ExistingPayment,
		SavingPerPay:     roundTo2Decimals(savingPerPay),
		TotalSavings:     roundTo2Decimals(savingPerPay * float64(count)),
		TotalPayments:    count,
		IsPositiveSaving: savingPerPay > 0,
		Warnings:         w.warnings(),
	}, nil
}

package service

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"novated-lease/domain"
)

// LeaseCalculator produces the full novated lease breakdown for one vehicle
// and salary. It is a pure function of its input and the tables.
type LeaseCalculator struct {
	tables *Tables
	onRoad *OnRoadEstimator
	logger *zap.Logger
}

func NewLeaseCalculator(tables *Tables, logger *zap.Logger) *LeaseCalculator {
	if tables == nil {
		tables = defaultTables
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaseCalculator{
		tables: tables,
		onRoad: NewOnRoadEstimator(tables, logger),
		logger: logger,
	}
}

func validateLeaseInput(input domain.LeaseInput) error {
	if input.VehiclePrice <= 0 {
		return invalidInput("vehicle price must be positive, got %.2f", input.VehiclePrice)
	}
	if input.VehiclePrice > MaxVehiclePrice {
		return invalidInput("vehicle price exceeds the maximum of $%.2f", MaxVehiclePrice)
	}
	if input.IsOnRoadPriceIncluded && input.VehiclePrice <= BaseRegistration {
		return invalidInput("drive-away price %.2f does not cover registration", input.VehiclePrice)
	}
	if input.AnnualSalary < 0 || input.AnnualSalary > MaxAnnualSalary {
		return invalidInput("annual salary %.2f outside 0 to %.2f", input.AnnualSalary, MaxAnnualSalary)
	}
	if input.LeaseTermYears < MinTermYears || input.LeaseTermYears > MaxTermYears {
		return invalidInput("lease term %d outside %d to %d years", input.LeaseTermYears, MinTermYears, MaxTermYears)
	}
	if input.AnnualKm < 0 || input.AnnualKm > MaxAnnualKm {
		return invalidInput("annual km %d outside 0 to %d", input.AnnualKm, MaxAnnualKm)
	}
	return nil
}

// Calculate runs the lease calculation.
func (c *LeaseCalculator) Calculate(input domain.LeaseInput) (domain.LeaseResult, error) {
	if err := validateLeaseInput(input); err != nil {
		return domain.LeaseResult{}, err
	}

	w := newWarningSink(c.logger.With(zap.String("calculator", "lease")))

	payPeriod := input.PayPeriod
	perYear := periodsFor(payPeriod, w)
	if _, ok := periodsPerYear[payPeriod]; !ok {
		payPeriod = domain.FrequencyMonthly
	}

	basePrice := input.VehiclePrice
	if input.IsOnRoadPriceIncluded {
		basePrice = c.onRoad.simpleBaseFromDriveAway(input.VehiclePrice, input.State, w)
	}
	onRoad := c.onRoad.simple(basePrice, input.State, w)
	if input.IsOnRoadPriceIncluded {
		onRoad.DriveAwayPrice = input.VehiclePrice
	}

	gst := apportionGST(basePrice)
	finance := c.finance(input.LeaseTermYears, gst, onRoad, w)
	running := c.runningCosts(input.FuelType, input.AnnualKm, w)

	annualFinance := finance.MonthlyPayment * 12
	gstSavings := running.Total * GSTRate / (1 + GSTRate)
	packageCost := annualFinance + running.Total - gstSavings

	fbt := c.fbt(input, basePrice, onRoad.DriveAwayPrice, packageCost, w)
	preTax := packageCost - fbt.EmployeeContribution

	taxWithout := IncomeTax(input.AnnualSalary, c.tables.TaxBrackets)
	taxWith := IncomeTax(input.AnnualSalary-preTax, c.tables.TaxBrackets)
	taxSavings := taxWithout - taxWith
	fbt.AdjustedTaxableIncome = roundTo2Decimals(input.AnnualSalary - preTax + fbt.ReportableFringeBenefit)

	annual := domain.CostSummary{
		Finance:             annualFinance,
		RunningCosts:        running.Total,
		Total:               annualFinance + running.Total,
		PreTaxDeduction:     preTax,
		PostTaxContribution: fbt.EmployeeContribution,
		TaxSavings:          taxSavings,
		GSTSavings:          gstSavings,
		NetCost:             preTax + fbt.EmployeeContribution - taxSavings,
	}

	var preTaxShare float64
	if packageCost > 0 {
		preTaxShare = preTax / packageCost
	}

	return domain.LeaseResult{
		PayPeriod:             payPeriod,
		PeriodsPerYear:        perYear,
		Annual:                roundSummary(annual, 1),
		PerPeriod:             roundSummary(annual, perYear),
		RunningCosts:          running,
		OnRoad:                onRoad,
		GST:                   roundGST(gst),
		FBT:                   fbt,
		Finance:               finance,
		IncomeTaxWithoutLease: roundTo2Decimals(taxWithout),
		IncomeTaxWithLease:    roundTo2Decimals(taxWith),
		Breakdown:             breakdown(annualFinance, preTaxShare, running, perYear, input.FuelType),
		Inputs:                input,
		Warnings:              w.warnings(),
	}, nil
}

// apportionGST splits the GST-inclusive price. GST above the luxury cap cannot
// be claimed by the lessor and is financed instead.
func apportionGST(basePrice float64) domain.GSTBreakdown {
	exGST := basePrice / (1 + GSTRate)
	gstOnCar := basePrice - exGST
	claimable := math.Min(gstOnCar, GSTCap*GSTRate)
	return domain.GSTBreakdown{
		BasePrice:       basePrice,
		ExGSTPrice:      exGST,
		GSTOnCar:        gstOnCar,
		ClaimableGST:    claimable,
		NonClaimableGST: gstOnCar - claimable,
	}
}

func roundGST(g domain.GSTBreakdown) domain.GSTBreakdown {
	return domain.GSTBreakdown{
		BasePrice:       roundTo2Decimals(g.BasePrice),
		ExGSTPrice:      roundTo2Decimals(g.ExGSTPrice),
		GSTOnCar:        roundTo2Decimals(g.GSTOnCar),
		ClaimableGST:    roundTo2Decimals(g.ClaimableGST),
		NonClaimableGST: roundTo2Decimals(g.NonClaimableGST),
	}
}

// finance amortises the NAF over the term with the first payment deferred one
// month and the ATO minimum residual as balloon.
func (c *LeaseCalculator) finance(termYears int, gst domain.GSTBreakdown, onRoad domain.OnRoadCosts, w *warningSink) domain.FinanceBreakdown {
	naf := gst.ExGSTPrice + gst.NonClaimableGST + onRoad.StampDuty + onRoad.Registration + EstablishmentFee
	residualPct := c.tables.primaryBalloon(termYears, w)
	residual := naf * residualPct

	termMonths := termYears * 12
	n := termMonths - DeferralMonths
	r := EffectiveMonthlyRate(FinanceRatePct)
	residualPV := residual / math.Pow(1+r, float64(termMonths))
	monthly := (naf - residualPV) * (1 + r) * r / (1 - math.Pow(1+r, -float64(n)))

	return domain.FinanceBreakdown{
		InterestRate:       FinanceRatePct,
		EstablishmentFee:   EstablishmentFee,
		NetAmountFinanced:  roundTo2Decimals(naf),
		ResidualPercentage: residualPct,
		ResidualValue:      roundTo2Decimals(residual),
		MonthlyPayment:     roundTo2Decimals(monthly),
		NumberOfPayments:   n,
		DeferralMonths:     DeferralMonths,
	}
}

func (c *LeaseCalculator) runningCosts(fuel domain.FuelType, annualKm int, w *warningSink) domain.RunningCosts {
	profile := c.tables.vehicle(fuel, w)
	km := float64(annualKm)

	rc := domain.RunningCosts{
		Insurance:    BaseInsurance * profile.CostMultiplier,
		Registration: BaseRegoRenewal * profile.CostMultiplier,
		Servicing:    BaseServicing * profile.CostMultiplier,
		Tyres:        km / TyreKmInterval * TyreCostPerSet,
	}
	if fuel == domain.FuelEV {
		rc.Fuel = km * EVCostPerKm
	} else {
		rc.Fuel = km / 100 * profile.LitresPer100Km * FuelPricePerL
	}
	rc.Total = rc.Insurance + rc.Registration + rc.Servicing + rc.Tyres + rc.Fuel

	return domain.RunningCosts{
		Insurance:    roundTo2Decimals(rc.Insurance),
		Registration: roundTo2Decimals(rc.Registration),
		Servicing:    roundTo2Decimals(rc.Servicing),
		Tyres:        roundTo2Decimals(rc.Tyres),
		Fuel:         roundTo2Decimals(rc.Fuel),
		Total:        roundTo2Decimals(rc.Total),
	}
}

// fbt decides between the EV exemption and the employee contribution method.
// The exempt branch records a reportable benefit for income tests; the ECM
// branch moves the statutory taxable value into post-tax contributions.
func (c *LeaseCalculator) fbt(input domain.LeaseInput, basePrice, driveAway, packageCost float64, w *warningSink) domain.FBTBreakdown {
	taxable := basePrice * StatutoryFBTRate
	out := domain.FBTBreakdown{
		BaseValue:             roundTo2Decimals(basePrice),
		StatutoryTaxableValue: roundTo2Decimals(taxable),
	}

	if input.FuelType == domain.FuelEV {
		if driveAway <= FBTExemptEVThreshold {
			out.Exempt = true
			out.ReportableFringeBenefit = roundTo2Decimals(taxable * FBTGrossUpRate)
			return out
		}
		w.add("ev_over_fbt_threshold", fmt.Sprintf(
			"drive-away price %.2f is above the EV exemption threshold %.2f, using the employee contribution method",
			driveAway, FBTExemptEVThreshold))
	}

	out.EmployeeContribution = roundTo2Decimals(math.Min(taxable, packageCost))
	return out
}

func roundSummary(annual domain.CostSummary, periods int) domain.CostSummary {
	d := float64(periods)
	return domain.CostSummary{
		Finance:             roundTo2Decimals(annual.Finance / d),
		RunningCosts:        roundTo2Decimals(annual.RunningCosts / d),
		Total:               roundTo2Decimals(annual.Total / d),
		PreTaxDeduction:     roundTo2Decimals(annual.PreTaxDeduction / d),
		PostTaxContribution: roundTo2Decimals(annual.PostTaxContribution / d),
		TaxSavings:          roundTo2Decimals(annual.TaxSavings / d),
		GSTSavings:          roundTo2Decimals(annual.GSTSavings / d),
		NetCost:             roundTo2Decimals(annual.NetCost / d),
	}
}

// breakdown builds the display rows. Only the finance row carries the
// bracket-based split; the rest use the flat illustrative share.
func breakdown(annualFinance, preTaxShare float64, rc domain.RunningCosts, perYear int, fuel domain.FuelType) []domain.CostCategory {
	fuelLabel := "Fuel"
	if fuel == domain.FuelEV {
		fuelLabel = "Charging"
	}

	financePreTax := annualFinance * preTaxShare
	rows := []domain.CostCategory{{
		Name:      "Finance",
		Annual:    roundTo2Decimals(annualFinance),
		PerPeriod: roundTo2Decimals(annualFinance / float64(perYear)),
		PreTax:    roundTo2Decimals(financePreTax),
		PostTax:   roundTo2Decimals(annualFinance - financePreTax),
	}}

	for _, item := range []struct {
		name   string
		amount float64
	}{
		{"Insurance", rc.Insurance},
		{"Registration", rc.Registration},
		{"Servicing", rc.Servicing},
		{"Tyres", rc.Tyres},
		{fuelLabel, rc.Fuel},
	} {
		rows = append(rows, domain.CostCategory{
			Name:         item.name,
			Annual:       item.amount,
			PerPeriod:    roundTo2Decimals(item.amount / float64(perYear)),
			PreTax:       roundTo2Decimals(item.amount * IllustrativePreTaxShare),
			PostTax:      roundTo2Decimals(item.amount * (1 - IllustrativePreTaxShare)),
			Illustrative: true,
		})
	}
	return rows
}

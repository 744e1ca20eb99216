package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novated-lease/domain"
)

func sedanInput() domain.LeaseInput {
	return domain.LeaseInput{
		VehiclePrice:   50_000,
		State:          domain.StateNSW,
		FuelType:       domain.FuelSedan,
		AnnualSalary:   100_000,
		LeaseTermYears: 5,
		AnnualKm:       15_000,
		PayPeriod:      domain.FrequencyMonthly,
	}
}

func TestLeaseCalculator_PetrolUsesEmployeeContribution(t *testing.T) {
	result, err := NewLeaseCalculator(nil, nil).Calculate(sedanInput())
	require.NoError(t, err)

	assert.Equal(t, 2_500.0, result.OnRoad.StampDuty)
	assert.Equal(t, 900.0, result.OnRoad.Registration)
	assert.Equal(t, 53_400.0, result.OnRoad.DriveAwayPrice)

	assert.Equal(t, 49_354.55, result.Finance.NetAmountFinanced)
	assert.Equal(t, 13_883.43, result.Finance.ResidualValue)
	assert.Equal(t, 814.41, result.Finance.MonthlyPayment)
	assert.Equal(t, 59, result.Finance.NumberOfPayments)
	assert.Equal(t, 1, result.Finance.DeferralMonths)

	assert.Equal(t, 5_975.0, result.RunningCosts.Total)
	assert.False(t, result.FBT.Exempt)
	assert.Equal(t, 10_000.0, result.FBT.EmployeeContribution)

	assert.InDelta(t, 9_772.92, result.Annual.Finance, 0.001)
	assert.InDelta(t, 5_204.74, result.Annual.PreTaxDeduction, 0.001)
	assert.InDelta(t, 1_561.42, result.Annual.TaxSavings, 0.001)
	assert.InDelta(t, 13_643.32, result.Annual.NetCost, 0.001)
	assert.InDelta(t, result.IncomeTaxWithoutLease-result.IncomeTaxWithLease, result.Annual.TaxSavings, 0.011)

	assert.Equal(t, 12, result.PeriodsPerYear)
	assert.Empty(t, result.Warnings)
}

func TestLeaseCalculator_EVUnderThresholdIsExempt(t *testing.T) {
	input := sedanInput()
	input.FuelType = domain.FuelEV

	result, err := NewLeaseCalculator(nil, nil).Calculate(input)
	require.NoError(t, err)

	assert.True(t, result.FBT.Exempt)
	assert.Zero(t, result.FBT.EmployeeContribution)
	assert.Equal(t, 18_868.0, result.FBT.ReportableFringeBenefit)
	assert.Equal(t, 105_367.81, result.FBT.AdjustedTaxableIncome)
	assert.Equal(t, 4_100.0, result.RunningCosts.Total)
	assert.InDelta(t, 13_500.19, result.Annual.PreTaxDeduction, 0.001)
	assert.InDelta(t, 4_050.06, result.Annual.TaxSavings, 0.001)

	var labels []string
	for _, row := range result.Breakdown {
		labels = append(labels, row.Name)
	}
	assert.Contains(t, labels, "Charging")
	assert.NotContains(t, labels, "Fuel")
}

func TestLeaseCalculator_EVOverThresholdFallsBackToECM(t *testing.T) {
	input := sedanInput()
	input.FuelType = domain.FuelEV
	input.VehiclePrice = 100_000
	input.AnnualSalary = 150_000

	result, err := NewLeaseCalculator(nil, nil).Calculate(input)
	require.NoError(t, err)

	assert.False(t, result.FBT.Exempt)
	assert.Equal(t, 20_000.0, result.FBT.EmployeeContribution)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "ev_over_fbt_threshold", result.Warnings[0].Code)

	assert.InDelta(t, 6_334.0, result.GST.ClaimableGST, 0.001)
	assert.Equal(t, 2_756.91, result.GST.NonClaimableGST)
	assert.Equal(t, 100_066.0, result.Finance.NetAmountFinanced)
}

func TestApportionGST_CapIsIdempotent(t *testing.T) {
	capped := apportionGST(100_000).ClaimableGST
	assert.InDelta(t, capped, apportionGST(250_000).ClaimableGST, 1e-9)
	assert.InDelta(t, GSTCap*GSTRate, capped, 1e-9)

	under := apportionGST(55_000)
	assert.InDelta(t, 5_000.0, under.ClaimableGST, 1e-9)
	assert.InDelta(t, 0, under.NonClaimableGST, 1e-9)
}

func TestLeaseCalculator_DriveAwayPriceIsBackedOut(t *testing.T) {
	input := sedanInput()
	input.VehiclePrice = 53_400
	input.IsOnRoadPriceIncluded = true

	result, err := NewLeaseCalculator(nil, nil).Calculate(input)
	require.NoError(t, err)

	assert.InDelta(t, 50_000.0, result.GST.BasePrice, 0.001)
	assert.Equal(t, 2_500.0, result.OnRoad.StampDuty)
	assert.Equal(t, 53_400.0, result.OnRoad.DriveAwayPrice)
	assert.Equal(t, 814.41, result.Finance.MonthlyPayment)
}

func TestLeaseCalculator_PerPeriodFigures(t *testing.T) {
	input := sedanInput()
	input.PayPeriod = domain.FrequencyFortnightly

	result, err := NewLeaseCalculator(nil, nil).Calculate(input)
	require.NoError(t, err)

	assert.Equal(t, 26, result.PeriodsPerYear)
	assert.InDelta(t, result.Annual.NetCost/26, result.PerPeriod.NetCost, 0.01)
	assert.Equal(t, domain.FrequencyFortnightly, result.PayPeriod)
}

func TestLeaseCalculator_BreakdownSplits(t *testing.T) {
	result, err := NewLeaseCalculator(nil, nil).Calculate(sedanInput())
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 6)

	finance := result.Breakdown[0]
	assert.Equal(t, "Finance", finance.Name)
	assert.False(t, finance.Illustrative)
	assert.InDelta(t, finance.Annual, finance.PreTax+finance.PostTax, 0.011)

	for _, row := range result.Breakdown[1:] {
		assert.True(t, row.Illustrative, row.Name)
		assert.InDelta(t, row.Annual*IllustrativePreTaxShare, row.PreTax, 0.006, row.Name)
	}
}

func TestLeaseCalculator_FallbacksWarn(t *testing.T) {
	input := sedanInput()
	input.State = "ZZ"
	input.FuelType = "Tractor"
	input.PayPeriod = "daily"

	result, err := NewLeaseCalculator(nil, nil).Calculate(input)
	require.NoError(t, err)

	codes := map[string]bool{}
	for _, w := range result.Warnings {
		codes[w.Code] = true
	}
	assert.True(t, codes["unknown_state"])
	assert.True(t, codes["unknown_fuel_type"])
	assert.True(t, codes["unknown_frequency"])

	assert.Equal(t, 2_100.0, result.OnRoad.StampDuty)
	assert.Equal(t, domain.FrequencyMonthly, result.PayPeriod)
}

func TestLeaseCalculator_InvalidInput(t *testing.T) {
	tests := map[string]func(*domain.LeaseInput){
		"zero price":        func(in *domain.LeaseInput) { in.VehiclePrice = 0 },
		"price over cap":    func(in *domain.LeaseInput) { in.VehiclePrice = 1_500_000 },
		"negative salary":   func(in *domain.LeaseInput) { in.AnnualSalary = -1 },
		"term too long":     func(in *domain.LeaseInput) { in.LeaseTermYears = 6 },
		"negative distance": func(in *domain.LeaseInput) { in.AnnualKm = -10 },
	}

	calc := NewLeaseCalculator(nil, nil)
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			input := sedanInput()
			mutate(&input)
			_, err := calc.Calculate(input)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

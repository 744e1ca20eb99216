package domain

type LeaseInput struct {
	VehiclePrice          float64   `json:"vehiclePrice"`
	AnnualSalary          float64   `json:"annualSalary"`
	LeaseTermYears        int       `json:"leaseTermYears"`
	FuelType              FuelType  `json:"fuelType"`
	AnnualKm              int       `json:"annualKm"`
	State                 State     `json:"state"`
	PayPeriod             Frequency `json:"payPeriod"`
	IsOnRoadPriceIncluded bool      `json:"isOnRoadPriceIncluded"`
}

type RunningCosts struct {
	Insurance    float64 `json:"insurance"`
	Registration float64 `json:"registration"`
	Servicing    float64 `json:"servicing"`
	Tyres        float64 `json:"tyres"`
	Fuel         float64 `json:"fuel"`
	Total        float64 `json:"total"`
}

// CostSummary is used for both the annual and the per-pay-period view.
type CostSummary struct {
	Finance             float64 `json:"finance"`
	RunningCosts        float64 `json:"runningCosts"`
	Total               float64 `json:"total"`
	PreTaxDeduction     float64 `json:"preTaxDeduction"`
	PostTaxContribution float64 `json:"postTaxContribution"`
	TaxSavings          float64 `json:"taxSavings"`
	GSTSavings          float64 `json:"gstSavings"`
	NetCost             float64 `json:"netCost"`
}

type GSTBreakdown struct {
	BasePrice       float64 `json:"basePrice"`
	ExGSTPrice      float64 `json:"exGstPrice"`
	GSTOnCar        float64 `json:"gstOnCar"`
	ClaimableGST    float64 `json:"claimableGst"`
	NonClaimableGST float64 `json:"nonClaimableGst"`
}

type FBTBreakdown struct {
	Exempt                  bool    `json:"exempt"`
	BaseValue               float64 `json:"baseValue"`
	StatutoryTaxableValue   float64 `json:"statutoryTaxableValue"`
	EmployeeContribution    float64 `json:"employeeContribution"`
	ReportableFringeBenefit float64 `json:"reportableFringeBenefit"`
	AdjustedTaxableIncome   float64 `json:"adjustedTaxableIncome"`
}

type FinanceBreakdown struct {
	InterestRate       float64 `json:"interestRate"`
	EstablishmentFee   float64 `json:"establishmentFee"`
	NetAmountFinanced  float64 `json:"netAmountFinanced"`
	ResidualPercentage float64 `json:"residualPercentage"`
	ResidualValue      float64 `json:"residualValue"`
	MonthlyPayment     float64 `json:"monthlyPayment"`
	NumberOfPayments   int     `json:"numberOfPayments"`
	DeferralMonths     int     `json:"deferralMonths"`
}

// CostCategory is one display row. Illustrative rows use a flat pre/post-tax
// split rather than the bracket-based figures.
type CostCategory struct {
	Name         string  `json:"name"`
	Annual       float64 `json:"annual"`
	PerPeriod    float64 `json:"perPeriod"`
	PreTax       float64 `json:"preTax"`
	PostTax      float64 `json:"postTax"`
	Illustrative bool    `json:"illustrative"`
}

type LeaseResult struct {
	PayPeriod      Frequency `json:"payPeriod"`
	PeriodsPerYear int       `json:"periodsPerYear"`

	Annual    CostSummary `json:"annual"`
	PerPeriod CostSummary `json:"perPeriod"`

	RunningCosts RunningCosts     `json:"runningCosts"`
	OnRoad       OnRoadCosts      `json:"onRoad"`
	GST          GSTBreakdown     `json:"gst"`
	FBT          FBTBreakdown     `json:"fbt"`
	Finance      FinanceBreakdown `json:"finance"`

	IncomeTaxWithoutLease float64 `json:"incomeTaxWithoutLease"`
	IncomeTaxWithLease    float64 `json:"incomeTaxWithLease"`

	Breakdown []CostCategory `json:"breakdown"`
	Inputs    LeaseInput     `json:"inputs"`
	Warnings  []Warning      `json:"warnings,omitempty"`
}

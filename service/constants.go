package service

const (
	MaxVehiclePrice = 1_000_000.0  // one million dollars
	MaxAnnualSalary = 10_000_000.0 // ten million dollars
	MaxAnnualKm     = 200_000
	MinTermYears    = 1
	MaxTermYears    = 5

	// Primary calculator finance
	FinanceRatePct   = 7.5
	EstablishmentFee = 500.0
	DeferralMonths   = 1
	GSTRate          = 0.1
	GSTCap           = 63_340.0 // luxury threshold proxy, claimable GST is capped at 10% of this

	// FBT
	FBTExemptEVThreshold = 91_387.0
	StatutoryFBTRate     = 0.20
	FBTGrossUpRate       = 1.8868

	// Simple on-road model
	BaseRegistration = 900.0

	// Running costs, annual and GST inclusive before the vehicle multiplier
	BaseInsurance   = 1_800.0
	BaseRegoRenewal = 900.0
	BaseServicing   = 800.0
	TyreKmInterval  = 40_000.0
	TyreCostPerSet  = 1_000.0
	FuelPricePerL   = 2.00
	EVCostPerKm     = 0.05

	// Flat pre-tax share used only for the illustrative breakdown rows
	IllustrativePreTaxShare = 0.30

	// BYO finance
	BYOEstablishmentFee = 500.0
	BYODeferralMonths   = 1

	// Fallbacks for unknown lookup keys
	DefaultTermYears = 5
)

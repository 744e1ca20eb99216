package domain

// BYOInput describes a vehicle financed outside the lessor's panel. Overrides
// are nil when the user did not type in a dealer figure.
type BYOInput struct {
	VehicleValue         float64     `json:"vehicleValue"`
	State                State       `json:"state"`
	VehicleType          VehicleType `json:"vehicleType"`
	TermYears            int         `json:"termYears"`
	StampDutyOverride    *float64    `json:"stampDutyOverride,omitempty"`
	RegistrationOverride *float64    `json:"registrationOverride,omitempty"`
	IncludeSchedule      bool        `json:"includeSchedule"`
}

type BYOResult struct {
	VehicleExGST     float64       `json:"vehicleExGST"`
	StampDuty        float64       `json:"stampDuty"`
	StampDutyAuto    float64       `json:"stampDutyAuto"`
	Registration     float64       `json:"registration"`
	RegistrationAuto float64       `json:"registrationAuto"`
	EstablishmentFee float64       `json:"establishmentFee"`
	TotalFinanced    float64       `json:"totalFinanced"`
	BalloonPercent   float64       `json:"balloonPercent"`
	BalloonAmount    float64       `json:"balloonAmount"`
	AnnualRate       float64       `json:"annualRate"`
	MonthlyPayment   float64       `json:"monthlyPayment"`
	NPayments        int           `json:"nPayments"`
	Schedule         []ScheduleRow `json:"schedule,omitempty"`
	Warnings         []Warning     `json:"warnings,omitempty"`
}

type ExistingQuote struct {
	ExistingPayment   float64          `json:"existingPayment"`
	ExistingFrequency Frequency        `json:"existingFrequency"`
	ExistingTermYears int              `json:"existingTermYears"`
	PaymentStructure  PaymentStructure `json:"paymentStructure"`
}

type ComparisonInput struct {
	BYO      BYOInput      `json:"byo"`
	Existing ExistingQuote `json:"existing"`
}

type ComparisonResult struct {
	BYOPayment       float64   `json:"byoPayment"`
	ExistingPayment  float64   `json:"existingPayment"`
	SavingPerPay     float64   `json:"savingPerPay"`
	TotalSavings     float64   `json:"totalSavings"`
	TotalPayments    int       `json:"totalPayments"`
	IsPositiveSaving bool      `json:"isPositiveSaving"`
	Warnings         []Warning `json:"warnings,omitempty"`
}

type ComparisonReport struct {
	BYO        BYOResult        `json:"byo"`
	Comparison ComparisonResult `json:"comparison"`
}

type ScheduleRow struct {
	Month          int     `json:"month"`
	OpeningBalance float64 `json:"openingBalance"`
	Interest       float64 `json:"interest"`
	Payment        float64 `json:"payment"`
	Principal      float64 `json:"principal"`
	Fee            float64 `json:"fee"`
	ClosingBalance float64 `json:"closingBalance"`
}

package domain

type State string
type FuelType string
type VehicleType string
type Frequency string
type PaymentStructure string
type RegistrationZone string

const (
	StateNSW State = "NSW"
	StateVIC State = "VIC"
	StateQLD State = "QLD"
	StateSA  State = "SA"
	StateWA  State = "WA"
	StateTAS State = "TAS"
	StateACT State = "ACT"
	StateNT  State = "NT"

	FuelEV       FuelType = "EV"
	FuelHybrid   FuelType = "Hybrid"
	FuelSUV      FuelType = "SUV"
	FuelUte      FuelType = "Ute"
	FuelLargeUte FuelType = "LargeUte"
	FuelHatch    FuelType = "Hatch"
	FuelSedan    FuelType = "Sedan"

	VehiclePetrol VehicleType = "petrol"
	VehicleHybrid VehicleType = "hybrid"
	VehicleEV     VehicleType = "ev"

	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"

	StructureFullTerm  PaymentStructure = "full_term"
	StructureDeferred2 PaymentStructure = "deferred_2"

	ZoneMetro    RegistrationZone = "metro"
	ZoneRegional RegistrationZone = "regional"
	ZoneRural    RegistrationZone = "rural"
)

// Warning records a lookup that fell back to a default value. The calculation
// still completes; the warning travels with the result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// VehicleAttrs feeds the detailed on-road model. Zero values are replaced by
// defaults (4 cylinders, 1500kg tare, metro zone).
type VehicleAttrs struct {
	VehicleType VehicleType      `json:"vehicleType"`
	Cylinders   int              `json:"cylinders"`
	TareKg      int              `json:"tareKg"`
	Zone        RegistrationZone `json:"zone"`
}

type OnRoadCosts struct {
	Registration   float64 `json:"registration"`
	StampDuty      float64 `json:"stampDuty"`
	Total          float64 `json:"total"`
	DriveAwayPrice float64 `json:"driveAwayPrice"`
}

type FeeComponent struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type OnRoadEstimateInput struct {
	Price float64      `json:"price"`
	State State        `json:"state"`
	Attrs VehicleAttrs `json:"attrs"`
}

type DetailedOnRoadCosts struct {
	OnRoadCosts
	RegistrationComponents []FeeComponent `json:"registrationComponents"`
	Warnings               []Warning      `json:"warnings,omitempty"`
}

package domain

type Severity string
type Rating string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"

	RatingGood    Rating = "good"
	RatingCaution Rating = "caution"
	RatingWarning Rating = "warning"
)

// QuoteAnalysisInput is a competitor lease quote. AmountFinanced defaults to
// the ex-GST FBT value when zero.
type QuoteAnalysisInput struct {
	FBTValue       float64   `json:"fbtValue"`
	AmountFinanced float64   `json:"amountFinanced"`
	Payment        float64   `json:"payment"`
	Frequency      Frequency `json:"frequency"`
	Residual       float64   `json:"residual"`
	TermYears      int       `json:"termYears"`
}

type QuoteIssue struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

type QuoteAnalysis struct {
	ImpliedAnnualRate  float64      `json:"impliedAnnualRate"`
	PeriodicRate       float64      `json:"periodicRate"`
	Iterations         int          `json:"iterations"`
	ResidualPercent    float64      `json:"residualPercent"`
	MinimumResidualPct float64      `json:"minimumResidualPercent"`
	TotalPaid          float64      `json:"totalPaid"`
	Issues             []QuoteIssue `json:"issues"`
	Score              int          `json:"score"`
	Rating             Rating       `json:"rating"`
	Warnings           []Warning    `json:"warnings,omitempty"`
}

package service

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"novated-lease/domain"
)

// AnalyzerSettings tunes the implied-rate solver and the anomaly thresholds.
// Margins are percentage points around MarketRatePct.
type AnalyzerSettings struct {
	Tolerance            float64 `yaml:"tolerance"`
	MaxIterations        int     `yaml:"max_iterations"`
	MarketRatePct        float64 `yaml:"market_rate_pct"`
	HighRateMarginPct    float64 `yaml:"high_rate_margin_pct"`
	MediumRateMarginPct  float64 `yaml:"medium_rate_margin_pct"`
	LowRateMarginPct     float64 `yaml:"low_rate_margin_pct"`
	ResidualShortfallPct float64 `yaml:"residual_shortfall_pct"`
}

func DefaultAnalyzerSettings() AnalyzerSettings {
	return AnalyzerSettings{
		Tolerance:            1e-6,
		MaxIterations:        100,
		MarketRatePct:        FinanceRatePct,
		HighRateMarginPct:    4,
		MediumRateMarginPct:  2,
		LowRateMarginPct:     3,
		ResidualShortfallPct: 0.5,
	}
}

const (
	bisectionLower = -0.5
	bisectionUpper = 1.0
)

// QuoteAnalyzer reverse-engineers the interest rate hidden in a competitor's
// lease quote and flags anything that looks off.
type QuoteAnalyzer struct {
	tables   *Tables
	settings AnalyzerSettings
	logger   *zap.Logger
}

func NewQuoteAnalyzer(tables *Tables, settings AnalyzerSettings, logger *zap.Logger) *QuoteAnalyzer {
	if tables == nil {
		tables = defaultTables
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultAnalyzerSettings()
	if settings.Tolerance <= 0 {
		settings.Tolerance = defaults.Tolerance
	}
	if settings.MaxIterations <= 0 {
		settings.MaxIterations = defaults.MaxIterations
	}
	if settings.MarketRatePct <= 0 {
		settings.MarketRatePct = defaults.MarketRatePct
	}
	return &QuoteAnalyzer{tables: tables, settings: settings, logger: logger}
}

func (a *QuoteAnalyzer) Analyze(input domain.QuoteAnalysisInput) (domain.QuoteAnalysis, error) {
	if input.FBTValue <= 0 {
		return domain.QuoteAnalysis{}, invalidInput("FBT value must be positive, got %.2f", input.FBTValue)
	}
	if input.Payment <= 0 {
		return domain.QuoteAnalysis{}, invalidInput("payment must be positive, got %.2f", input.Payment)
	}
	if input.Residual < 0 {
		return domain.QuoteAnalysis{}, invalidInput("residual must not be negative, got %.2f", input.Residual)
	}
	if input.TermYears < MinTermYears || input.TermYears > MaxTermYears {
		return domain.QuoteAnalysis{}, invalidInput("term %d outside %d to %d years", input.TermYears, MinTermYears, MaxTermYears)
	}

	w := newWarningSink(a.logger.With(zap.String("calculator", "quote_analyzer")))
	perYear := periodsFor(input.Frequency, w)
	n := input.TermYears * perYear

	principal := input.AmountFinanced
	if principal <= 0 {
		principal = input.FBTValue / (1 + GSTRate)
	}

	periodic, iterations, err := a.solvePeriodicRate(principal, input.Payment, input.Residual, n, perYear)
	if err != nil {
		return domain.QuoteAnalysis{}, err
	}
	annual := periodicToAnnualPct(periodic, perYear)

	residualPct := input.Residual / principal * 100
	minimumPct := a.tables.primaryBalloon(input.TermYears, w) * 100

	issues := a.issues(annual, residualPct, minimumPct)
	score := scoreIssues(issues)

	return domain.QuoteAnalysis{
		ImpliedAnnualRate:  roundTo2Decimals(annual),
		PeriodicRate:       periodic,
		Iterations:         iterations,
		ResidualPercent:    roundTo2Decimals(residualPct),
		MinimumResidualPct: roundTo2Decimals(minimumPct),
		TotalPaid:          roundTo2Decimals(input.Payment*float64(n) + input.Residual),
		Issues:             issues,
		Score:              score,
		Rating:             ratingFor(score),
		Warnings:           w.warnings(),
	}, nil
}

// solvePeriodicRate finds i such that the payments and the residual,
// discounted at i per period, equal the principal. Newton-Raphson starts from
// the market rate; a bisection over a fixed bracket takes over when Newton
// stalls or leaves the domain.
func (a *QuoteAnalyzer) solvePeriodicRate(principal, payment, residual float64, n, perYear int) (float64, int, error) {
	f := func(i float64) float64 {
		return payment*annuityFactor(i, n) + residual*math.Pow(1+i, -float64(n)) - principal
	}
	df := func(i float64) float64 {
		return payment*annuityFactorDerivative(i, n) - float64(n)*residual*math.Pow(1+i, -float64(n)-1)
	}

	i := a.settings.MarketRatePct / 100 / float64(perYear)
	iterations := 0
	for iterations < a.settings.MaxIterations {
		iterations++
		d := df(i)
		if d == 0 || math.IsNaN(d) {
			break
		}
		next := i - f(i)/d
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= bisectionLower || next >= bisectionUpper {
			break
		}
		if math.Abs(next-i) < a.settings.Tolerance {
			return next, iterations, nil
		}
		i = next
	}

	a.logger.Debug("newton did not settle, bisecting", zap.Int("iterations", iterations))

	lo, hi := bisectionLower, bisectionUpper
	if f(lo) < 0 || f(hi) > 0 {
		return 0, iterations, errors.Wrapf(ErrRateNotConverged,
			"no rate between %.2f and %.2f per period reproduces payment %.2f", lo, hi, payment)
	}
	for iterations < 2*a.settings.MaxIterations {
		iterations++
		mid := (lo + hi) / 2
		if f(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < a.settings.Tolerance {
			return (lo + hi) / 2, iterations, nil
		}
	}
	return 0, iterations, errors.Wrapf(ErrRateNotConverged, "no convergence after %d iterations", iterations)
}

// annuityFactor is the present value of one unit paid at the end of each of
// n periods.
func annuityFactor(i float64, n int) float64 {
	if math.Abs(i) < 1e-12 {
		return float64(n)
	}
	return (1 - math.Pow(1+i, -float64(n))) / i
}

func annuityFactorDerivative(i float64, n int) float64 {
	nf := float64(n)
	if math.Abs(i) < 1e-12 {
		return -nf * (nf + 1) / 2
	}
	return (nf*math.Pow(1+i, -nf-1)*i - (1 - math.Pow(1+i, -nf))) / (i * i)
}

// periodicToAnnualPct expresses a per-period rate as the nominal annual rate
// that compounds daily to the same value, so it lines up with our own rates.
func periodicToAnnualPct(i float64, perYear int) float64 {
	daily := math.Pow(1+i, float64(perYear)/365) - 1
	return daily * 365 * 100
}

func (a *QuoteAnalyzer) issues(annualPct, residualPct, minimumPct float64) []domain.QuoteIssue {
	s := a.settings
	issues := []domain.QuoteIssue{}

	switch {
	case annualPct > s.MarketRatePct+s.HighRateMarginPct:
		issues = append(issues, domain.QuoteIssue{
			Severity:    domain.SeverityHigh,
			Title:       "Interest rate far above market",
			Description: fmt.Sprintf("The quote implies %.2f%% p.a. against a market rate of %.2f%%.", annualPct, s.MarketRatePct),
		})
	case annualPct > s.MarketRatePct+s.MediumRateMarginPct:
		issues = append(issues, domain.QuoteIssue{
			Severity:    domain.SeverityMedium,
			Title:       "Interest rate above market",
			Description: fmt.Sprintf("The quote implies %.2f%% p.a. against a market rate of %.2f%%.", annualPct, s.MarketRatePct),
		})
	case annualPct < s.MarketRatePct-s.LowRateMarginPct:
		issues = append(issues, domain.QuoteIssue{
			Severity:    domain.SeverityLow,
			Title:       "Interest rate unusually low",
			Description: fmt.Sprintf("The quote implies only %.2f%% p.a. Check for fees or costs built into other lines.", annualPct),
		})
	}

	if residualPct < minimumPct-s.ResidualShortfallPct {
		issues = append(issues, domain.QuoteIssue{
			Severity:    domain.SeverityHigh,
			Title:       "Residual below ATO minimum",
			Description: fmt.Sprintf("The residual is %.2f%% of the amount financed; the ATO minimum for this term is %.2f%%.", residualPct, minimumPct),
		})
	}
	return issues
}

func scoreIssues(issues []domain.QuoteIssue) int {
	score := 10
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityHigh:
			score -= 4
		case domain.SeverityMedium:
			score -= 2
		case domain.SeverityLow:
			score--
		}
	}
	if score < 1 {
		return 1
	}
	return score
}

func ratingFor(score int) domain.Rating {
	switch {
	case score >= 8:
		return domain.RatingGood
	case score >= 5:
		return domain.RatingCaution
	default:
		return domain.RatingWarning
	}
}

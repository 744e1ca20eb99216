package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novated-lease/domain"
)

func newTestAnalyzer() *QuoteAnalyzer {
	return NewQuoteAnalyzer(nil, DefaultAnalyzerSettings(), nil)
}

func TestQuoteAnalyzer_RecoversMarketRate(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(domain.QuoteAnalysisInput{
		FBTValue:       55_000,
		AmountFinanced: 50_000,
		Payment:        808.6240090797432,
		Frequency:      domain.FrequencyMonthly,
		Residual:       14_065,
		TermYears:      5,
	})
	require.NoError(t, err)

	assert.Equal(t, 7.5, analysis.ImpliedAnnualRate)
	assert.InDelta(t, EffectiveMonthlyRate(7.5), analysis.PeriodicRate, 1e-6)
	assert.Equal(t, 28.13, analysis.ResidualPercent)
	assert.Equal(t, 28.13, analysis.MinimumResidualPct)
	assert.Empty(t, analysis.Issues)
	assert.Equal(t, 10, analysis.Score)
	assert.Equal(t, domain.RatingGood, analysis.Rating)
	assert.LessOrEqual(t, analysis.Iterations, 100)
}

func TestQuoteAnalyzer_FlagsHighRate(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(domain.QuoteAnalysisInput{
		FBTValue:       55_000,
		AmountFinanced: 50_000,
		Payment:        972.0609681581997,
		Frequency:      domain.FrequencyMonthly,
		Residual:       14_065,
		TermYears:      5,
	})
	require.NoError(t, err)

	assert.Equal(t, 13.0, analysis.ImpliedAnnualRate)
	require.Len(t, analysis.Issues, 1)
	assert.Equal(t, domain.SeverityHigh, analysis.Issues[0].Severity)
	assert.Equal(t, 6, analysis.Score)
	assert.Equal(t, domain.RatingCaution, analysis.Rating)
}

func TestQuoteAnalyzer_FlagsLowResidual(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(domain.QuoteAnalysisInput{
		FBTValue:       55_000,
		AmountFinanced: 50_000,
		Payment:        1_002.4371304948406,
		Frequency:      domain.FrequencyMonthly,
		TermYears:      5,
	})
	require.NoError(t, err)

	assert.Equal(t, 7.5, analysis.ImpliedAnnualRate)
	require.Len(t, analysis.Issues, 1)
	assert.Equal(t, "Residual below ATO minimum", analysis.Issues[0].Title)
	assert.Equal(t, 6, analysis.Score)
}

func TestQuoteAnalyzer_RecoversWeeklyRate(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(domain.QuoteAnalysisInput{
		FBTValue:       55_000,
		AmountFinanced: 50_000,
		Payment:        196.13915050831304,
		Frequency:      domain.FrequencyWeekly,
		Residual:       14_065,
		TermYears:      5,
	})
	require.NoError(t, err)

	assert.Equal(t, 9.0, analysis.ImpliedAnnualRate)
	assert.InDelta(t, 0.0017320541593235372, analysis.PeriodicRate, 1e-9)
	assert.Empty(t, analysis.Issues)
	assert.InDelta(t, 65_061.18, analysis.TotalPaid, 0.001)
}

func TestQuoteAnalyzer_PrincipalFromFBTValue(t *testing.T) {
	analysis, err := newTestAnalyzer().Analyze(domain.QuoteAnalysisInput{
		FBTValue:  55_000,
		Payment:   808.6240090797432,
		Frequency: domain.FrequencyMonthly,
		Residual:  14_065,
		TermYears: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 7.5, analysis.ImpliedAnnualRate)
}

func TestQuoteAnalyzer_NoRateReproducesPayment(t *testing.T) {
	_, err := newTestAnalyzer().Analyze(domain.QuoteAnalysisInput{
		FBTValue:       1_100,
		AmountFinanced: 1_000,
		Payment:        5_000,
		Frequency:      domain.FrequencyMonthly,
		TermYears:      1,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateNotConverged))
}

func TestQuoteAnalyzer_InvalidInput(t *testing.T) {
	a := newTestAnalyzer()

	for _, input := range []domain.QuoteAnalysisInput{
		{FBTValue: 0, Payment: 800, TermYears: 5},
		{FBTValue: 55_000, Payment: 0, TermYears: 5},
		{FBTValue: 55_000, Payment: 800, Residual: -1, TermYears: 5},
		{FBTValue: 55_000, Payment: 800, TermYears: 0},
	} {
		_, err := a.Analyze(input)
		assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
	}
}

func TestScoreIssues_FloorsAtOne(t *testing.T) {
	issues := []domain.QuoteIssue{
		{Severity: domain.SeverityHigh},
		{Severity: domain.SeverityHigh},
		{Severity: domain.SeverityMedium},
	}
	assert.Equal(t, 1, scoreIssues(issues))
	assert.Equal(t, domain.RatingWarning, ratingFor(1))
	assert.Equal(t, domain.RatingCaution, ratingFor(5))
	assert.Equal(t, domain.RatingGood, ratingFor(8))
}

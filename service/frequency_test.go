package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novated-lease/domain"
)

func TestPeriodsPerYear(t *testing.T) {
	for freq, want := range map[domain.Frequency]int{
		domain.FrequencyWeekly:      52,
		domain.FrequencyFortnightly: 26,
		domain.FrequencyMonthly:     12,
	} {
		n, warnings := PeriodsPerYear(freq)
		assert.Equal(t, want, n, string(freq))
		assert.Empty(t, warnings)
	}

	n, warnings := PeriodsPerYear("quarterly")
	assert.Equal(t, 12, n)
	require.Len(t, warnings, 1)
	assert.Equal(t, "unknown_frequency", warnings[0].Code)
}

func TestConvertFrequency_RoundTrip(t *testing.T) {
	freqs := []domain.Frequency{domain.FrequencyWeekly, domain.FrequencyFortnightly, domain.FrequencyMonthly}
	for _, from := range freqs {
		for _, to := range freqs {
			back := ConvertFrequency(ConvertFrequency(831.41, from, to), to, from)
			assert.InDelta(t, 831.41, back, 1e-6, "%s -> %s", from, to)
		}
	}
}

func TestConvertFrequency_MonthlyToFortnightly(t *testing.T) {
	assert.InDelta(t, 1_200.0, ConvertFrequency(2_600, domain.FrequencyMonthly, domain.FrequencyFortnightly), 1e-9)
}

func TestTotalPayments(t *testing.T) {
	tests := []struct {
		years     int
		freq      domain.Frequency
		structure domain.PaymentStructure
		want      int
	}{
		{5, domain.FrequencyMonthly, domain.StructureFullTerm, 60},
		{5, domain.FrequencyMonthly, domain.StructureDeferred2, 58},
		{3, domain.FrequencyFortnightly, domain.StructureDeferred2, 74},
		{2, domain.FrequencyWeekly, domain.StructureDeferred2, 96},
		{4, domain.FrequencyWeekly, "", 208},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPayments(tt.years, tt.freq, tt.structure),
			"%d years %s %s", tt.years, tt.freq, tt.structure)
	}
}

func TestTotalPayments_UnknownStructureUsesFullTerm(t *testing.T) {
	w := newWarningSink(nil)
	assert.Equal(t, 60, totalPayments(5, domain.FrequencyMonthly, "balloon_only", w))
	require.Len(t, w.warnings(), 1)
	assert.Equal(t, "unknown_payment_structure", w.warnings()[0].Code)
}

package service

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novated-lease/domain"
)

func TestStampDuty_DetailedSchedules(t *testing.T) {
	estimator := NewOnRoadEstimator(nil, nil)

	tests := []struct {
		name  string
		price float64
		state domain.State
		attrs domain.VehicleAttrs
		want  float64
	}{
		{"VIC zero emission", 52_000, domain.StateVIC, domain.VehicleAttrs{VehicleType: domain.VehicleEV}, 2_184},
		{"VIC petrol luxury band", 90_000, domain.StateVIC, domain.VehicleAttrs{}, 4_680},
		{"VIC part unit rounds up", 52_001, domain.StateVIC, domain.VehicleAttrs{VehicleType: domain.VehicleEV}, 2_192},
		{"NSW under threshold", 40_000, domain.StateNSW, domain.VehicleAttrs{}, 1_200},
		{"NSW over threshold", 60_000, domain.StateNSW, domain.VehicleAttrs{}, 2_100},
		{"QLD four cylinder", 50_000, domain.StateQLD, domain.VehicleAttrs{Cylinders: 4}, 1_500},
		{"QLD eight cylinder high value", 120_000, domain.StateQLD, domain.VehicleAttrs{Cylinders: 8}, 7_200},
		{"WA top rate", 60_000, domain.StateWA, domain.VehicleAttrs{}, 3_900},
		{"ACT zero emission exempt", 70_000, domain.StateACT, domain.VehicleAttrs{VehicleType: domain.VehicleEV}, 0},
		{"ACT surcharge", 55_000, domain.StateACT, domain.VehicleAttrs{}, 1_850},
		{"SA flat", 40_000, domain.StateSA, domain.VehicleAttrs{}, 1_600},
		{"NT flat", 40_000, domain.StateNT, domain.VehicleAttrs{}, 1_200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			costs := estimator.Detailed(tt.price, tt.state, tt.attrs)
			assert.Equal(t, tt.want, costs.StampDuty)
			assert.Empty(t, costs.Warnings)
		})
	}
}

func TestStampDuty_UnknownStateFallsBackToVIC(t *testing.T) {
	estimator := NewOnRoadEstimator(nil, nil)

	duty, warnings := estimator.StampDuty(52_000, "XX", domain.VehicleEV)

	assert.Equal(t, 2_184.0, duty)
	require.Len(t, warnings, 1)
	assert.Equal(t, "unknown_state", warnings[0].Code)
}

func TestSimple_FlatRatePlusBaseRegistration(t *testing.T) {
	estimator := NewOnRoadEstimator(nil, nil)

	costs, warnings := estimator.Simple(40_000, domain.StateNSW)

	assert.Empty(t, warnings)
	assert.Equal(t, 2_000.0, costs.StampDuty)
	assert.Equal(t, 900.0, costs.Registration)
	assert.Equal(t, 2_900.0, costs.Total)
	assert.Equal(t, 42_900.0, costs.DriveAwayPrice)
}

func TestSimple_UnknownState(t *testing.T) {
	costs, warnings := NewOnRoadEstimator(nil, nil).Simple(50_000, "Victoria")

	assert.Equal(t, 2_100.0, costs.StampDuty)
	require.Len(t, warnings, 1)
	assert.Equal(t, "unknown_state", warnings[0].Code)
}

func TestOnRoadModelsStayDistinct(t *testing.T) {
	estimator := NewOnRoadEstimator(nil, nil)

	simple, _ := estimator.Simple(40_000, domain.StateNSW)
	detailed := estimator.Detailed(40_000, domain.StateNSW, domain.VehicleAttrs{})

	assert.NotEqual(t, simple.StampDuty, detailed.StampDuty)
	assert.Equal(t, 1_200.0, detailed.StampDuty)
}

func TestDetailed_Registration(t *testing.T) {
	estimator := NewOnRoadEstimator(nil, nil)

	vic := estimator.Detailed(52_000, domain.StateVIC, domain.VehicleAttrs{VehicleType: domain.VehicleEV})
	assert.Equal(t, 904.0, vic.Registration)
	assert.Len(t, vic.RegistrationComponents, 2)
	assert.Equal(t, vic.StampDuty+vic.Registration, vic.Total)
	assert.Equal(t, 52_000+vic.Total, vic.DriveAwayPrice)

	rural := estimator.Detailed(52_000, domain.StateVIC, domain.VehicleAttrs{Zone: domain.ZoneRural})
	assert.Less(t, rural.Registration, vic.Registration)

	nsw := estimator.Detailed(40_000, domain.StateNSW, domain.VehicleAttrs{})
	assert.Equal(t, 1_060.0, nsw.Registration)
}

func TestDetailed_UnknownAttributesWarn(t *testing.T) {
	costs := NewOnRoadEstimator(nil, nil).Detailed(40_000, domain.StateVIC, domain.VehicleAttrs{
		VehicleType: "diesel",
		Zone:        "outback",
	})

	codes := make([]string, 0, len(costs.Warnings))
	for _, w := range costs.Warnings {
		codes = append(codes, w.Code)
	}
	assert.ElementsMatch(t, []string{"unknown_vehicle_type", "unknown_zone"}, codes)
	assert.Equal(t, 904.0, costs.Registration)
}

func TestEstimate_Validation(t *testing.T) {
	estimator := NewOnRoadEstimator(nil, nil)

	_, err := estimator.Estimate(domain.OnRoadEstimateInput{Price: 0, State: domain.StateVIC})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = estimator.Estimate(domain.OnRoadEstimateInput{Price: 2_000_000, State: domain.StateVIC})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	costs, err := estimator.Estimate(domain.OnRoadEstimateInput{Price: 40_000, State: domain.StateNSW})
	require.NoError(t, err)
	assert.Equal(t, 1_200.0, costs.StampDuty)
}

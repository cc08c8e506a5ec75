/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecosense/common/dto"
)

// nominalFeatures triggers no maintenance rule
func nominalFeatures() FeatureVector {
	return FeatureVector{
		ReadingFrequency:     1,
		QualityTrend:         0,
		ValueDrift:           0,
		BatteryDecline:       0.05,
		SensorAgeDays:        100,
		DaysSinceCalibration: 30,
	}
}

func TestMaintenancePredictor_InsufficientDataFloor(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	result := mp.Predict(nominalFeatures(), 5)

	assert.False(t, result.NeedsMaintenance)
	assert.Equal(t, 365, result.EstimatedDays)
	assert.InDelta(t, 0.1, result.Confidence, 0.0001)
	assert.Equal(t, dto.PriorityLow, result.Priority)
	assert.Equal(t, []string{"Insufficient data for prediction"}, result.Reasons)
}

func TestMaintenancePredictor_NominalSensor(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	result := mp.Predict(nominalFeatures(), 168)

	assert.False(t, result.NeedsMaintenance)
	assert.Zero(t, result.RiskScore)
	assert.Empty(t, result.Reasons)
	assert.Equal(t, dto.PriorityLow, result.Priority)
	assert.Equal(t, 30, result.EstimatedDays)
	assert.InDelta(t, 0.5, result.Confidence, 0.0001)
}

func TestMaintenancePredictor_Rules(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	tests := []struct {
		name         string
		mutate       func(*FeatureVector)
		expectedRisk float64
		reasonPart   string
	}{
		{
			"battery decline",
			func(f *FeatureVector) { f.BatteryDecline = 0.15 },
			0.30,
			"Battery declining",
		},
		{
			"quality degradation",
			func(f *FeatureVector) { f.QualityTrend = -0.4 },
			0.25,
			"quality degrading",
		},
		{
			"irregular frequency",
			func(f *FeatureVector) { f.ReadingFrequency = 0.5 },
			0.20,
			"Irregular reading frequency",
		},
		{
			"overdue calibration",
			func(f *FeatureVector) { f.DaysSinceCalibration = 200 },
			0.15,
			"Calibration overdue by 100 days",
		},
		{
			"end of lifespan",
			func(f *FeatureVector) { f.SensorAgeDays = 400 },
			0.10,
			"end of recommended lifespan",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := nominalFeatures()
			tt.mutate(&features)

			result := mp.Predict(features, 168)

			assert.InDelta(t, tt.expectedRisk, result.RiskScore, 0.0001)
			assert.Len(t, result.Reasons, 1)
			assert.Contains(t, result.Reasons[0], tt.reasonPart)
		})
	}
}

func TestMaintenancePredictor_BatteryReasonReportsPercent(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())
	features := nominalFeatures()
	features.BatteryDecline = 0.15

	result := mp.Predict(features, 168)

	// the reason reports the decline as a percentage, not the raw fraction
	assert.Contains(t, result.Reasons[0], "15.0% per day")
}

func TestMaintenancePredictor_DriftIsSecondarySignal(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	features := nominalFeatures()
	features.ValueDrift = 0.5

	result := mp.Predict(features, 168)

	assert.Zero(t, result.RiskScore)
	assert.Contains(t, result.Reasons, "Significant sensor drift detected")
}

func TestMaintenancePredictor_RiskAccumulates(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	features := FeatureVector{
		ReadingFrequency:     0.5,
		QualityTrend:         -0.4,
		BatteryDecline:       0.2,
		SensorAgeDays:        500,
		DaysSinceCalibration: 300,
	}
	result := mp.Predict(features, 168)

	assert.InDelta(t, 1.0, result.RiskScore, 0.0001)
	assert.True(t, result.NeedsMaintenance)
	assert.Equal(t, dto.PriorityCritical, result.Priority)
	assert.Equal(t, 1, result.EstimatedDays)
	assert.InDelta(t, 0.95, result.Confidence, 0.0001)
	assert.Len(t, result.Reasons, 5)
}

func TestMaintenancePredictor_PriorityBoundaries(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	tests := []struct {
		risk     float64
		expected dto.MaintenancePriority
	}{
		{0.95, dto.PriorityCritical},
		{0.80, dto.PriorityHigh},
		{0.65, dto.PriorityMedium},
		{0.30, dto.PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, mp.priority(tt.risk), "risk %.2f", tt.risk)
	}
}

func TestMaintenancePredictor_OverdueCalibrationBumpsPriority(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	features := nominalFeatures()
	features.DaysSinceCalibration = 200

	result := mp.Predict(features, 168)

	assert.Contains(t, result.Reasons[0], "Calibration overdue")
	assert.Equal(t, dto.PriorityMedium, result.Priority)
	assert.False(t, result.NeedsMaintenance)
}

func TestMaintenancePredictor_Monotonicity(t *testing.T) {
	mp := NewMaintenancePredictor(DefaultConfig())

	features := nominalFeatures()
	previousRisk := -1.0
	for _, decline := range []float64{0, 0.05, 0.11, 0.5, 1.0} {
		features.BatteryDecline = decline
		result := mp.Predict(features, 168)
		assert.GreaterOrEqual(t, result.RiskScore, previousRisk,
			"risk must not decrease as battery decline grows (decline=%.2f)", decline)
		previousRisk = result.RiskScore
	}
}

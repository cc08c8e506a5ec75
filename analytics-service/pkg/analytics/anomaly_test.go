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
	"github.com/stretchr/testify/require"

	"ecosense/common/dto"
)

// nearConstantValues is a tight band around 10 so the window keeps a small but
// non-zero variance
func nearConstantValues(count int) []float64 {
	values := make([]float64, count)
	for i := range values {
		values[i] = 10 + 0.1*float64(i%3)
	}
	return values
}

func TestAnomalyDetector_TooFewReadings(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	readings := makeReadings("s1", 5*60_000, nearConstantValues(19))
	assert.Empty(t, ad.Detect(readings))
}

func TestAnomalyDetector_SpikeIsFlagged(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	values := nearConstantValues(30)
	values[25] = 100
	readings := makeReadings("s1", 5*60_000, values)

	anomalies := ad.Detect(readings)

	require.Len(t, anomalies, 1)
	assert.Equal(t, readings[25].Timestamp, anomalies[0].Timestamp)
	assert.Equal(t, float64(100), anomalies[0].ActualValue)
	assert.InDelta(t, 10.1, anomalies[0].ExpectedValue, 0.1)
	assert.Equal(t, float64(1), anomalies[0].Score)
	assert.Equal(t, dto.AnomalySeverityHigh, anomalies[0].Severity)
	assert.InDelta(t, 0.95, anomalies[0].Confidence, 0.0001)
}

func TestAnomalyDetector_FirstWindowNeverEvaluated(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	// spike inside the warm-up range cannot be flagged
	values := nearConstantValues(30)
	values[10] = 100
	readings := makeReadings("s1", 5*60_000, values)

	for _, a := range ad.Detect(readings) {
		assert.NotEqual(t, readings[10].Timestamp, a.Timestamp)
	}
}

func TestAnomalyDetector_ConjunctionSuppressesIQROnlyTrigger(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	// A single extreme value inside the window collapses the IQR to zero width
	// while inflating the standard deviation. The candidate value 12 falls
	// outside the degenerate fences but has a tiny z-score, so the AND rule
	// must suppress it.
	values := repeatValues(10, 30)
	values[15] = 1000
	values[29] = 12
	readings := makeReadings("s1", 5*60_000, values)

	for _, a := range ad.Detect(readings) {
		assert.NotEqual(t, float64(12), a.ActualValue)
	}
}

func TestAnomalyDetector_ZeroVarianceWindowGuard(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	// stdDev of a flat window is 0 which forces zScore to 0, so even a huge
	// jump is not scored by the z test
	values := repeatValues(10, 30)
	values[29] = 100
	readings := makeReadings("s1", 5*60_000, values)

	assert.Empty(t, ad.Detect(readings))
}

func TestAnomalyDetector_ModerateDeviationInNoisyWindowNotFlagged(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	// high natural variance window, a moderately offset value stays inside
	// both the fences and the z threshold
	values := make([]float64, 30)
	for i := range values {
		if i%2 == 0 {
			values[i] = 0
		} else {
			values[i] = 100
		}
	}
	values[29] = 130
	readings := makeReadings("s1", 5*60_000, values)

	assert.Empty(t, ad.Detect(readings))
}

func TestAnomalyDetector_SoundSpikeScenario(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	// 100 hourly sound readings stable at 40-45 dB with reading #50 at 90 dB
	values := make([]float64, 100)
	for i := range values {
		values[i] = 40 + float64(i%6)
	}
	values[50] = 90
	readings := makeReadings("sound-01", millisPerHour, values)

	anomalies := ad.Detect(readings)

	require.Len(t, anomalies, 1)
	assert.Equal(t, readings[50].Timestamp, anomalies[0].Timestamp)
	assert.Equal(t, dto.AnomalySeverityHigh, anomalies[0].Severity)
}

func TestAnomalyDetector_Purity(t *testing.T) {
	ad := NewAnomalyDetector(DefaultConfig())

	values := nearConstantValues(40)
	values[30] = 75
	readings := makeReadings("s1", 5*60_000, values)

	first := ad.Detect(readings)
	second := ad.Detect(readings)
	assert.Equal(t, first, second)
}

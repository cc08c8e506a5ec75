/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"ecosense/common/dto"
)

func TestPatternAnalyzer_TooFewReadings(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	result := pa.Analyze(makeReadings("s1", millisPerHour, repeatValues(10, 99)))

	assert.Equal(t, dto.TrendStable, result.Trend)
	assert.False(t, result.HasSeasonality)
	assert.Empty(t, result.Forecast)
	assert.InDelta(t, 0.1, result.Confidence, 0.0001)
}

func TestPatternAnalyzer_StableTrend(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	// bounded oscillation over epoch-milli x values gives a negligible slope
	values := make([]float64, 168)
	for i := range values {
		values[i] = 20 + float64(i%6)
	}
	result := pa.Analyze(makeReadings("s1", millisPerHour, values))

	assert.Equal(t, dto.TrendStable, result.Trend)
}

func TestPatternAnalyzer_IncreasingTrend(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	// 4000 units per hour is above the slope threshold of 0.001 per milli
	values := make([]float64, 120)
	for i := range values {
		values[i] = float64(i) * 4000
	}
	result := pa.Analyze(makeReadings("s1", millisPerHour, values))

	assert.Equal(t, dto.TrendIncreasing, result.Trend)
	assert.Greater(t, result.Slope, 0.001)
}

func TestPatternAnalyzer_DecreasingTrend(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	values := make([]float64, 120)
	for i := range values {
		values[i] = float64(120-i) * 4000
	}
	result := pa.Analyze(makeReadings("s1", millisPerHour, values))

	assert.Equal(t, dto.TrendDecreasing, result.Trend)
}

func TestPatternAnalyzer_DailySeasonality(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	// clean 24-period sine, long enough to evaluate the daily lag but not the
	// weekly one
	values := make([]float64, 200)
	for i := range values {
		values[i] = 10 + 5*math.Sin(2*math.Pi*float64(i)/24)
	}
	result := pa.Analyze(makeReadings("s1", millisPerHour, values))

	assert.True(t, result.HasSeasonality)
	assert.Equal(t, 24, result.Period)
}

func TestPatternAnalyzer_NoSeasonalityOnFlatSeries(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	result := pa.Analyze(makeReadings("s1", millisPerHour, repeatValues(10, 200)))

	assert.False(t, result.HasSeasonality)
	assert.Zero(t, result.Period)
}

func TestPatternAnalyzer_ForecastLengthContract(t *testing.T) {
	config := DefaultConfig()
	config.ForecastPeriods = 12
	pa := NewPatternAnalyzer(config)

	result := pa.Analyze(makeReadings("s1", millisPerHour, repeatValues(10, 150)))
	assert.Len(t, result.Forecast, 12)

	sparse := pa.Analyze(makeReadings("s1", millisPerHour, repeatValues(10, 50)))
	assert.Empty(t, sparse.Forecast)
}

func TestPatternAnalyzer_ForecastFlooredAtZero(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	// steep decline drives the extrapolation negative, the forecast must clamp
	values := make([]float64, 120)
	for i := range values {
		values[i] = math.Max(0, float64(30-i)*4000)
	}
	result := pa.Analyze(makeReadings("s1", millisPerHour, values))

	for _, v := range result.Forecast {
		assert.GreaterOrEqual(t, v, float64(0))
	}
}

func TestPatternAnalyzer_Confidence(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	result := pa.Analyze(makeReadings("s1", millisPerHour, repeatValues(10, 200)))
	assert.InDelta(t, 0.7, result.Confidence, 0.0001)

	// capped at 0.9 for very long windows
	long := pa.Analyze(makeReadings("s1", millisPerHour, repeatValues(10, 600)))
	assert.InDelta(t, 0.9, long.Confidence, 0.0001)
}

func TestPatternAnalyzer_Purity(t *testing.T) {
	pa := NewPatternAnalyzer(DefaultConfig())

	values := make([]float64, 150)
	for i := range values {
		values[i] = 10 + 5*math.Sin(2*math.Pi*float64(i)/24)
	}
	readings := makeReadings("s1", millisPerHour, values)

	assert.Equal(t, pa.Analyze(readings), pa.Analyze(readings))
}

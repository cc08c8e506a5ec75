/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"math"

	"ecosense/common/dto"
)

const millisPerHour = 3_600_000

// PatternAnalyzer computes trend direction, seasonality and a short-horizon
// forecast over one reading window. All outputs are independent computations,
// nothing mutates shared state.
type PatternAnalyzer struct {
	config Config
}

func NewPatternAnalyzer(config Config) *PatternAnalyzer {
	return &PatternAnalyzer{config: config}
}

func (pa *PatternAnalyzer) Analyze(readings []dto.SensorReading) dto.PatternAnalysis {
	if len(readings) < pa.config.PatternMinReadings {
		return dto.PatternAnalysis{
			Trend:          dto.TrendStable,
			HasSeasonality: false,
			Forecast:       []float64{},
			Confidence:     0.1,
		}
	}

	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = r.Value
	}

	slope := pa.regressionSlope(readings)
	trend := dto.TrendStable
	if slope > pa.config.StableSlopeLimit {
		trend = dto.TrendIncreasing
	} else if slope < -pa.config.StableSlopeLimit {
		trend = dto.TrendDecreasing
	}

	hasSeasonality, period := pa.seasonality(values)

	return dto.PatternAnalysis{
		Trend:          trend,
		Slope:          slope,
		HasSeasonality: hasSeasonality,
		Period:         period,
		Forecast:       pa.forecast(values, slope),
		Confidence:     math.Min(0.9, 0.5+float64(len(readings))/1000),
	}
}

// regressionSlope fits value against timestamp (epoch millis) by ordinary
// least squares.
func (pa *PatternAnalyzer) regressionSlope(readings []dto.SensorReading) float64 {
	n := float64(len(readings))
	var sumX, sumY, sumXY, sumXX float64
	for _, r := range readings {
		x := float64(r.Timestamp)
		sumX += x
		sumY += r.Value
		sumXY += x * r.Value
		sumXX += x * x
	}
	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}

// seasonality evaluates the autocorrelation at each candidate lag and reports
// the lag with the strongest correlation when it clears the threshold. A lag
// is only evaluated when the series is longer than twice the lag.
func (pa *PatternAnalyzer) seasonality(values []float64) (bool, int) {
	bestCorrelation := 0.0
	bestLag := 0
	for _, lag := range pa.config.SeasonalityLags {
		if len(values) <= 2*lag {
			continue
		}
		r := autocorrelation(values, lag)
		if r > bestCorrelation {
			bestCorrelation = r
			bestLag = lag
		}
	}
	if bestCorrelation > pa.config.SeasonalityThreshold {
		return true, bestLag
	}
	return false, 0
}

func autocorrelation(values []float64, lag int) float64 {
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var numerator, denominator float64
	for i := 0; i < len(values); i++ {
		denominator += (values[i] - mean) * (values[i] - mean)
	}
	if denominator == 0 {
		return 0
	}
	for i := 0; i+lag < len(values); i++ {
		numerator += (values[i] - mean) * (values[i+lag] - mean)
	}
	return numerator / denominator
}

// forecast extrapolates the moving average of the basis window by the
// hourly-scaled trend, floored at 0.
func (pa *PatternAnalyzer) forecast(values []float64, slope float64) []float64 {
	basis := pa.config.ForecastBasisWindow
	if basis > len(values) {
		basis = len(values)
	}
	var sum float64
	for _, v := range values[len(values)-basis:] {
		sum += v
	}
	movingAverage := sum / float64(basis)

	// entry k is k+1 hours past the window end: the first forecast value is
	// the next period, not a restatement of the current moving average
	forecast := make([]float64, pa.config.ForecastPeriods)
	for k := range forecast {
		forecast[k] = math.Max(0, movingAverage+slope*float64(k+1)*millisPerHour)
	}
	return forecast
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"math"
	"sort"

	"ecosense/common/dto"
)

// AnomalyDetector flags out-of-distribution readings inside a rolling window.
// A point is only flagged when the z-score test AND the IQR fence test agree,
// which suppresses the false positives either test triggers on its own.
type AnomalyDetector struct {
	config Config
}

func NewAnomalyDetector(config Config) *AnomalyDetector {
	return &AnomalyDetector{config: config}
}

// Detect evaluates every index i >= AnomalyWindow against its trailing
// window. Fewer than AnomalyMinReadings readings yield no anomalies, not an
// error.
func (ad *AnomalyDetector) Detect(readings []dto.SensorReading) []dto.AnomalyPoint {
	if len(readings) < ad.config.AnomalyMinReadings {
		return nil
	}

	w := ad.config.AnomalyWindow
	var anomalies []dto.AnomalyPoint
	for i := w; i < len(readings); i++ {
		window := readings[i-w : i]
		value := readings[i].Value

		mean, stdDev := meanStdDev(window)

		var zScore float64
		if stdDev > 0 {
			zScore = math.Abs(value-mean) / stdDev
		}

		lowerFence, upperFence := iqrFences(window)
		outsideFences := value < lowerFence || value > upperFence

		if zScore > ad.config.ZScoreThreshold && outsideFences {
			score := math.Min(1, zScore/4)
			severity := dto.AnomalySeverityMedium
			if score > ad.config.HighSeverityScore {
				severity = dto.AnomalySeverityHigh
			}
			anomalies = append(anomalies, dto.AnomalyPoint{
				Timestamp:     readings[i].Timestamp,
				ActualValue:   value,
				ExpectedValue: mean,
				Score:         score,
				Confidence:    math.Min(0.95, score),
				Severity:      severity,
			})
		}
	}
	return anomalies
}

func meanStdDev(window []dto.SensorReading) (float64, float64) {
	n := float64(len(window))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, r := range window {
		sum += r.Value
	}
	mean := sum / n

	var sqDiffSum float64
	for _, r := range window {
		diff := r.Value - mean
		sqDiffSum += diff * diff
	}
	return mean, math.Sqrt(sqDiffSum / n)
}

// iqrFences returns the Tukey outlier boundaries of the window values
func iqrFences(window []dto.SensorReading) (float64, float64) {
	values := make([]float64, len(window))
	for i, r := range window {
		values[i] = r.Value
	}
	sort.Float64s(values)

	q1 := values[len(values)/4]
	q3 := values[(len(values)*3)/4]
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

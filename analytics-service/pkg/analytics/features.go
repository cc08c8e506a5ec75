/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"math"
	"time"

	"ecosense/common/dto"
)

// FeatureVector is derived per call and never persisted.
type FeatureVector struct {
	ReadingFrequency     float64 `json:"readingFrequency"`
	QualityTrend         float64 `json:"qualityTrend"`
	ValueDrift           float64 `json:"valueDrift"`
	BatteryDecline       float64 `json:"batteryDecline"`
	SensorAgeDays        int64   `json:"sensorAgeDays"`
	DaysSinceCalibration int64   `json:"daysSinceCalibration"`
}

// FeatureExtractor turns a sensor and its ordered reading window into a fixed
// feature vector. Pure function of its inputs, readings must be sorted
// ascending by timestamp.
type FeatureExtractor struct {
	config Config
	now    func() time.Time
}

func NewFeatureExtractor(config Config) *FeatureExtractor {
	return &FeatureExtractor{config: config, now: time.Now}
}

func (fe *FeatureExtractor) Extract(sensor dto.Sensor, readings []dto.SensorReading) FeatureVector {
	nowMillis := fe.now().UnixMilli()

	features := FeatureVector{
		ReadingFrequency: fe.readingFrequency(readings),
		QualityTrend:     fe.qualityTrend(readings),
		ValueDrift:       fe.valueDrift(readings),
		SensorAgeDays:    wholeDaysSince(sensor.Created, nowMillis),
	}

	calibration := sensor.CalibrationDate
	if calibration == 0 {
		// Never calibrated, fall back to installation date
		calibration = sensor.Created
	}
	features.DaysSinceCalibration = wholeDaysSince(calibration, nowMillis)

	features.BatteryDecline = math.Max(0,
		(float64(features.SensorAgeDays)/365)*0.1+(1-features.ReadingFrequency)*0.05)

	return features
}

// readingFrequency is the ratio of expected to observed publishing cadence,
// capped at 1. Undefined (0) for fewer than 2 readings.
func (fe *FeatureExtractor) readingFrequency(readings []dto.SensorReading) float64 {
	if len(readings) < 2 {
		return 0
	}
	var intervalSum float64
	for i := 1; i < len(readings); i++ {
		intervalSum += float64(readings[i].Timestamp - readings[i-1].Timestamp)
	}
	avgInterval := intervalSum / float64(len(readings)-1)
	if avgInterval <= 0 {
		// All readings share a timestamp, treat the sensor as on-cadence
		return 1
	}
	return math.Min(1, float64(fe.config.ExpectedIntervalMillis)/avgInterval)
}

// qualityTrend compares the average quality score of the second half of the
// window against the first half, as a signed ratio.
func (fe *FeatureExtractor) qualityTrend(readings []dto.SensorReading) float64 {
	if len(readings) < 2 {
		return 0
	}
	mid := len(readings) / 2
	firstAvg := avgQualityScore(readings[:mid])
	secondAvg := avgQualityScore(readings[mid:])
	if firstAvg == 0 {
		return 0
	}
	return (secondAvg - firstAvg) / firstAvg
}

// valueDrift compares the mean of the first quarter of the window against the
// mean of the last quarter.
func (fe *FeatureExtractor) valueDrift(readings []dto.SensorReading) float64 {
	quarter := len(readings) / 4
	if quarter == 0 {
		return 0
	}
	firstAvg := avgValue(readings[:quarter])
	lastAvg := avgValue(readings[len(readings)-quarter:])
	if firstAvg == 0 {
		return 0
	}
	return math.Abs(lastAvg-firstAvg) / math.Abs(firstAvg)
}

func avgQualityScore(readings []dto.SensorReading) float64 {
	if len(readings) == 0 {
		return 0
	}
	var sum float64
	count := 0
	for _, r := range readings {
		score := r.Quality.Score()
		if score == 0 {
			// reporter did not attach a quality, leave it out of the average
			continue
		}
		sum += score
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func avgValue(readings []dto.SensorReading) float64 {
	if len(readings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range readings {
		sum += r.Value
	}
	return sum / float64(len(readings))
}

func wholeDaysSince(epochMillis int64, nowMillis int64) int64 {
	if epochMillis <= 0 || epochMillis > nowMillis {
		return 0
	}
	return (nowMillis - epochMillis) / (24 * 60 * 60 * 1000)
}

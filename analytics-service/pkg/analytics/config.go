/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"github.com/go-playground/validator/v10"
)

// Config carries every window size and threshold the analyzers use so that
// multiple engine instances with different tunings can coexist in one process.
type Config struct {
	// Expected cadence of sensor publishing, used for readingFrequency
	ExpectedIntervalMillis int64 `json:"expectedIntervalMillis" validate:"gt=0"`

	// Feature extraction / maintenance
	WindowSize             int     `json:"windowSize"             validate:"gte=10"`
	MinReadings            int     `json:"minReadings"            validate:"gte=2"`
	BatteryDeclineLimit    float64 `json:"batteryDeclineLimit"    validate:"gt=0"`
	QualityTrendLimit      float64 `json:"qualityTrendLimit"      validate:"lt=0"`
	ReadingFrequencyLimit  float64 `json:"readingFrequencyLimit"  validate:"gt=0,lte=1"`
	CalibrationOverdueDays int64   `json:"calibrationOverdueDays" validate:"gt=0"`
	SensorLifespanDays     int64   `json:"sensorLifespanDays"     validate:"gt=0"`
	ValueDriftLimit        float64 `json:"valueDriftLimit"        validate:"gt=0"`
	MaintenanceRiskLimit   float64 `json:"maintenanceRiskLimit"   validate:"gt=0,lt=1"`

	// Anomaly detection
	AnomalyWindow       int     `json:"anomalyWindow"       validate:"gte=2"`
	AnomalyMinReadings  int     `json:"anomalyMinReadings"  validate:"gte=2"`
	ZScoreThreshold     float64 `json:"zScoreThreshold"     validate:"gt=0"`
	HighSeverityScore   float64 `json:"highSeverityScore"   validate:"gt=0,lte=1"`

	// Pattern analysis
	PatternMinReadings   int     `json:"patternMinReadings"   validate:"gte=10"`
	StableSlopeLimit     float64 `json:"stableSlopeLimit"     validate:"gt=0"`
	SeasonalityLags      []int   `json:"seasonalityLags"      validate:"min=1,dive,gt=1"`
	SeasonalityThreshold float64 `json:"seasonalityThreshold" validate:"gt=0,lt=1"`
	ForecastPeriods      int     `json:"forecastPeriods"      validate:"gt=0"`
	ForecastBasisWindow  int     `json:"forecastBasisWindow"  validate:"gt=0"`

	// Optimization
	MinHourlyBuckets       int     `json:"minHourlyBuckets"       validate:"gt=0"`
	PeakHourCount          int     `json:"peakHourCount"          validate:"gt=0"`
	SavingsPerPeakHour     float64 `json:"savingsPerPeakHour"     validate:"gte=0"`
	BaselineDeviationRatio float64 `json:"baselineDeviationRatio" validate:"gt=1"`
	TempSetpointCelsius    float64 `json:"tempSetpointCelsius"    validate:"gt=0"`
	TempVarianceLimit      float64 `json:"tempVarianceLimit"      validate:"gt=0"`
}

// DefaultConfig tunes the engine for a 5-minute publishing cadence with a
// 7-day hot window.
func DefaultConfig() Config {
	return Config{
		ExpectedIntervalMillis: 5 * 60_000,

		WindowSize:             168,
		MinReadings:            10,
		BatteryDeclineLimit:    0.10,
		QualityTrendLimit:      -0.20,
		ReadingFrequencyLimit:  0.75,
		CalibrationOverdueDays: 100,
		SensorLifespanDays:     365,
		ValueDriftLimit:        0.30,
		MaintenanceRiskLimit:   0.6,

		AnomalyWindow:      24,
		AnomalyMinReadings: 20,
		ZScoreThreshold:    2.5,
		HighSeverityScore:  0.5,

		PatternMinReadings:   100,
		StableSlopeLimit:     0.001,
		SeasonalityLags:      []int{24, 168},
		SeasonalityThreshold: 0.3,
		ForecastPeriods:      24,
		ForecastBasisWindow:  24,

		MinHourlyBuckets:       24,
		PeakHourCount:          3,
		SavingsPerPeakHour:     50,
		BaselineDeviationRatio: 1.2,
		TempSetpointCelsius:    24,
		TempVarianceLimit:      4,
	}
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

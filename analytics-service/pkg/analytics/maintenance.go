/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"fmt"
	"math"

	"ecosense/common/dto"
)

// MaintenancePredictor converts a feature vector into a maintenance risk
// score, priority and human-readable reasons. The risk score accumulates
// additively, every triggered rule appends its reason.
type MaintenancePredictor struct {
	config Config
}

func NewMaintenancePredictor(config Config) *MaintenancePredictor {
	return &MaintenancePredictor{config: config}
}

// Predict never fails: with fewer than MinReadings readings it returns the
// fixed low-confidence result instead.
func (mp *MaintenancePredictor) Predict(features FeatureVector, readingCount int) dto.MaintenancePrediction {
	if readingCount < mp.config.MinReadings {
		return dto.MaintenancePrediction{
			NeedsMaintenance: false,
			EstimatedDays:    365,
			Confidence:       0.1,
			Priority:         dto.PriorityLow,
			Reasons:          []string{"Insufficient data for prediction"},
		}
	}

	var riskScore float64
	var reasons []string

	if features.BatteryDecline > mp.config.BatteryDeclineLimit {
		riskScore += 0.30
		reasons = append(reasons,
			fmt.Sprintf("Battery declining at %.1f%% per day", features.BatteryDecline*100))
	}
	if features.QualityTrend < mp.config.QualityTrendLimit {
		riskScore += 0.25
		reasons = append(reasons, "Sensor quality degrading over time")
	}
	if features.ReadingFrequency < mp.config.ReadingFrequencyLimit {
		riskScore += 0.20
		reasons = append(reasons, "Irregular reading frequency detected")
	}
	if features.DaysSinceCalibration > mp.config.CalibrationOverdueDays {
		riskScore += 0.15
		reasons = append(reasons,
			fmt.Sprintf("Calibration overdue by %d days", features.DaysSinceCalibration-mp.config.CalibrationOverdueDays))
	}
	if features.SensorAgeDays > mp.config.SensorLifespanDays {
		riskScore += 0.10
		reasons = append(reasons, "Sensor approaching end of recommended lifespan")
	}
	if features.ValueDrift > mp.config.ValueDriftLimit {
		// secondary signal, reported but not scored
		reasons = append(reasons, "Significant sensor drift detected")
	}

	priority := mp.priority(riskScore)
	if priority == dto.PriorityLow && features.DaysSinceCalibration > mp.config.CalibrationOverdueDays {
		// overdue calibration always warrants scheduling, even at low risk
		priority = dto.PriorityMedium
	}

	return dto.MaintenancePrediction{
		NeedsMaintenance: riskScore > mp.config.MaintenanceRiskLimit,
		EstimatedDays:    int(math.Max(1, math.Floor(30*(1-riskScore)))),
		Confidence:       math.Min(0.95, 0.5+riskScore*0.5),
		Priority:         priority,
		Reasons:          reasons,
		RiskScore:        riskScore,
	}
}

func (mp *MaintenancePredictor) priority(riskScore float64) dto.MaintenancePriority {
	switch {
	case riskScore > 0.9:
		return dto.PriorityCritical
	case riskScore > 0.75:
		return dto.PriorityHigh
	case riskScore > mp.config.MaintenanceRiskLimit:
		return dto.PriorityMedium
	default:
		return dto.PriorityLow
	}
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

type PredictionType string

const (
	PredictionTypeMaintenance  PredictionType = "maintenance"
	PredictionTypeAnomaly      PredictionType = "anomaly"
	PredictionTypePattern      PredictionType = "pattern"
	PredictionTypeOptimization PredictionType = "optimization"
)

// SystemSensorId is used for fleet-wide predictions that belong to no single sensor
const SystemSensorId = "system"

type MaintenancePriority string

const (
	PriorityLow      MaintenancePriority = "low"
	PriorityMedium   MaintenancePriority = "medium"
	PriorityHigh     MaintenancePriority = "high"
	PriorityCritical MaintenancePriority = "critical"
)

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

const (
	AnomalySeverityMedium = "medium"
	AnomalySeverityHigh   = "high"
)

type MaintenancePrediction struct {
	NeedsMaintenance bool                `json:"needs_maintenance"        codec:"needs_maintenance"`
	EstimatedDays    int                 `json:"estimated_days"           codec:"estimated_days"`
	Confidence       float64             `json:"confidence"               codec:"confidence"`
	Priority         MaintenancePriority `json:"priority"                 codec:"priority"`
	Reasons          []string            `json:"reasons,omitempty"        codec:"reasons,omitempty"`
	RiskScore        float64             `json:"risk_score"               codec:"risk_score"`
}

// AnomalyPoint is one flagged reading, ExpectedValue is the trailing-window mean
type AnomalyPoint struct {
	Timestamp     int64   `json:"timestamp"      codec:"timestamp"`
	ActualValue   float64 `json:"actual_value"   codec:"actual_value"`
	ExpectedValue float64 `json:"expected_value" codec:"expected_value"`
	Score         float64 `json:"score"          codec:"score"`
	Confidence    float64 `json:"confidence"     codec:"confidence"`
	Severity      string  `json:"severity"       codec:"severity"`
}

type PatternAnalysis struct {
	Trend          TrendDirection `json:"trend"                    codec:"trend"`
	Slope          float64        `json:"slope"                    codec:"slope"`
	HasSeasonality bool           `json:"has_seasonality"          codec:"has_seasonality"`
	Period         int            `json:"period,omitempty"         codec:"period,omitempty"`
	Forecast       []float64      `json:"forecast"                 codec:"forecast"`
	Confidence     float64        `json:"confidence"               codec:"confidence"`
}

const (
	RecommendationTypeEnergy      = "energy"
	RecommendationTypeTemperature = "temperature"
)

type OptimizationRecommendation struct {
	Type             string   `json:"type"                        codec:"type"`
	Title            string   `json:"title"                       codec:"title"`
	Description      string   `json:"description,omitempty"       codec:"description,omitempty"`
	Impact           float64  `json:"impact"                      codec:"impact"`
	EstimatedSavings float64  `json:"estimated_savings"           codec:"estimated_savings"`
	PeakHours        []int    `json:"peak_hours,omitempty"        codec:"peak_hours,omitempty"`
	SensorIds        []string `json:"sensor_ids,omitempty"        codec:"sensor_ids,omitempty"`
}

// Prediction is the engine output record. Exactly one of the payload fields is
// set, matching Type. Created and ValidUntil are epoch millis.
type Prediction struct {
	Id             string                      `json:"id"                        codec:"id"`
	Type           PredictionType              `json:"type"                      codec:"type"`
	SensorId       string                      `json:"sensor_id"                 codec:"sensor_id"`
	Maintenance    *MaintenancePrediction      `json:"maintenance,omitempty"     codec:"maintenance,omitempty"`
	Anomalies      []AnomalyPoint              `json:"anomalies,omitempty"       codec:"anomalies,omitempty"`
	Pattern        *PatternAnalysis            `json:"pattern,omitempty"         codec:"pattern,omitempty"`
	Recommendation *OptimizationRecommendation `json:"recommendation,omitempty"  codec:"recommendation,omitempty"`
	Confidence     float64                     `json:"confidence"                codec:"confidence"`
	Created        int64                       `json:"created"                   codec:"created"`
	ValidUntil     int64                       `json:"valid_until"               codec:"valid_until"`
	CorrelationId  string                      `json:"correlation_id,omitempty"  codec:"correlation_id,omitempty"`
}

/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package dto

// SensorSummary is one element of a fleet snapshot, aggregated from a sensor's
// reading window. Median and P95 come from a t-digest over the window values.
type SensorSummary struct {
	SensorId     string     `json:"sensor_id"                codec:"sensor_id"`
	Type         SensorType `json:"type"                     codec:"type"`
	Status       string     `json:"status,omitempty"         codec:"status,omitempty"`
	BatteryLevel *float64   `json:"battery_level,omitempty"  codec:"battery_level,omitempty"`
	AvgValue     float64    `json:"avg_value"                codec:"avg_value"`
	Variance     float64    `json:"variance"                 codec:"variance"`
	Median       float64    `json:"median"                   codec:"median"`
	P95          float64    `json:"p95"                      codec:"p95"`
	QualityScore float64    `json:"quality_score"            codec:"quality_score"`
	ReadingCount int        `json:"reading_count"            codec:"reading_count"`
}

// FleetSnapshot is the cross-sensor input for the optimization pass. Energy and
// temperature readings are carried raw so the advisor can do hourly grouping.
type FleetSnapshot struct {
	Summaries           []SensorSummary `json:"summaries"                      codec:"summaries"`
	EnergyReadings      []SensorReading `json:"energy_readings,omitempty"      codec:"energy_readings,omitempty"`
	TemperatureReadings []SensorReading `json:"temperature_readings,omitempty" codec:"temperature_readings,omitempty"`
	Created             int64           `json:"created"                        codec:"created"`
}

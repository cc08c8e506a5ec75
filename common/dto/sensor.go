/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

// SensorType is the measured phenomenon, not the hardware model
type SensorType string

const (
	SensorTypeTemperature SensorType = "temperature"
	SensorTypeHumidity    SensorType = "humidity"
	SensorTypeCO2         SensorType = "co2"
	SensorTypeEnergy      SensorType = "energy"
	SensorTypeSound       SensorType = "sound"
	SensorTypeAirQuality  SensorType = "air_quality"
	SensorTypeMotion      SensorType = "motion"
	SensorTypeLight       SensorType = "light"
)

const (
	SensorStatusActive      = "active"
	SensorStatusInactive    = "inactive"
	SensorStatusMaintenance = "maintenance"
)

type Sensor struct {
	Id              string     `json:"id"                        codec:"id"`
	Name            string     `json:"name,omitempty"            codec:"name,omitempty"`
	Type            SensorType `json:"type"                      codec:"type"`
	Status          string     `json:"status,omitempty"          codec:"status,omitempty"`
	Location        string     `json:"location,omitempty"        codec:"location,omitempty"`
	Unit            string     `json:"unit,omitempty"            codec:"unit,omitempty"`
	BatteryLevel    *float64   `json:"battery_level,omitempty"   codec:"battery_level,omitempty"`
	CalibrationDate int64      `json:"calibration_date,omitempty" codec:"calibration_date,omitempty"`
	Created         int64      `json:"created,omitempty"         codec:"created,omitempty"`
	Modified        int64      `json:"modified,omitempty"        codec:"modified,omitempty"`
}

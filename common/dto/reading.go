/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package dto

// ReadingQuality is reported by the ingestion layer per reading
type ReadingQuality string

const (
	QualityExcellent ReadingQuality = "excellent"
	QualityGood      ReadingQuality = "good"
	QualityModerate  ReadingQuality = "moderate"
	QualityPoor      ReadingQuality = "poor"
)

// Score maps quality to a numeric scale used by trend statistics.
// Unknown quality maps to 0 so callers can skip it.
func (q ReadingQuality) Score() float64 {
	switch q {
	case QualityExcellent:
		return 4
	case QualityGood:
		return 3
	case QualityModerate:
		return 2
	case QualityPoor:
		return 1
	default:
		return 0
	}
}

// SensorReading is immutable once created. Timestamp is epoch millis, UTC.
type SensorReading struct {
	Id        string         `json:"id,omitempty"      codec:"id,omitempty"`
	SensorId  string         `json:"sensor_id"         codec:"sensor_id"`
	Timestamp int64          `json:"timestamp"         codec:"timestamp"`
	Value     float64        `json:"value"             codec:"value"`
	Unit      string         `json:"unit,omitempty"    codec:"unit,omitempty"`
	Quality   ReadingQuality `json:"quality,omitempty" codec:"quality,omitempty"`
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"time"

	"github.com/caio/go-tdigest/v4"

	"ecosense/common/dto"
)

// BuildFleetSnapshot aggregates per-sensor windows into the cross-sensor input
// of the optimization pass. Raw energy and temperature readings are carried
// through so the advisor can do its own hourly grouping.
func BuildFleetSnapshot(sensors []dto.Sensor, readingsBySensor map[string][]dto.SensorReading) dto.FleetSnapshot {
	snapshot := dto.FleetSnapshot{
		Summaries: make([]dto.SensorSummary, 0, len(sensors)),
		Created:   time.Now().UnixMilli(),
	}

	for _, sensor := range sensors {
		readings := readingsBySensor[sensor.Id]
		snapshot.Summaries = append(snapshot.Summaries, summarizeSensor(sensor, readings))

		switch sensor.Type {
		case dto.SensorTypeEnergy:
			snapshot.EnergyReadings = append(snapshot.EnergyReadings, readings...)
		case dto.SensorTypeTemperature:
			snapshot.TemperatureReadings = append(snapshot.TemperatureReadings, readings...)
		}
	}
	return snapshot
}

func summarizeSensor(sensor dto.Sensor, readings []dto.SensorReading) dto.SensorSummary {
	summary := dto.SensorSummary{
		SensorId:     sensor.Id,
		Type:         sensor.Type,
		Status:       sensor.Status,
		BatteryLevel: sensor.BatteryLevel,
		ReadingCount: len(readings),
	}
	if len(readings) == 0 {
		return summary
	}

	mean, stdDev := meanStdDev(readings)
	summary.AvgValue = mean
	summary.Variance = stdDev * stdDev
	summary.QualityScore = avgQualityScore(readings)

	digest, _ := tdigest.New()
	for _, r := range readings {
		if err := digest.Add(r.Value); err != nil {
			continue
		}
	}
	if digest.Count() > 0 {
		summary.Median = digest.Quantile(0.5)
		summary.P95 = digest.Quantile(0.95)
	}
	return summary
}

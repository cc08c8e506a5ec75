/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecosense/common/dto"
)

// makeHourlyReadings builds count hourly readings starting at an hour boundary
// so hour-of-day grouping is deterministic.
func makeHourlyReadings(sensorId string, count int, valueAt func(i int, hourOfDay int) float64) []dto.SensorReading {
	start := time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC)
	readings := make([]dto.SensorReading, count)
	for i := range readings {
		ts := start.Add(time.Duration(i) * time.Hour)
		readings[i] = dto.SensorReading{
			SensorId:  sensorId,
			Timestamp: ts.UnixMilli(),
			Value:     valueAt(i, ts.Hour()),
			Quality:   dto.QualityGood,
		}
	}
	return readings
}

func TestOptimizationAdvisor_InsufficientHourlyBuckets(t *testing.T) {
	oa := NewOptimizationAdvisor(DefaultConfig())

	snapshot := dto.FleetSnapshot{
		EnergyReadings:      makeHourlyReadings("en-01", 10, func(int, int) float64 { return 50 }),
		TemperatureReadings: makeHourlyReadings("tp-01", 10, func(int, int) float64 { return 30 }),
	}
	assert.Empty(t, oa.Advise(snapshot))
}

func TestOptimizationAdvisor_PeakUsage(t *testing.T) {
	oa := NewOptimizationAdvisor(DefaultConfig())

	// one week of hourly energy draw, evenings well above the rest of the day
	snapshot := dto.FleetSnapshot{
		EnergyReadings: makeHourlyReadings("en-01", 7*24, func(_ int, hour int) float64 {
			if hour >= 18 && hour <= 20 {
				return 95
			}
			return 20
		}),
	}
	recommendations := oa.Advise(snapshot)
	require.NotEmpty(t, recommendations)

	var peak *dto.OptimizationRecommendation
	for i := range recommendations {
		if len(recommendations[i].PeakHours) > 0 {
			peak = &recommendations[i]
			break
		}
	}
	require.NotNil(t, peak)
	assert.Equal(t, dto.RecommendationTypeEnergy, peak.Type)
	assert.Equal(t, []int{18, 19, 20}, peak.PeakHours)
	assert.Equal(t, float64(150), peak.EstimatedSavings)
}

func TestOptimizationAdvisor_BaselineDeviation(t *testing.T) {
	oa := NewOptimizationAdvisor(DefaultConfig())

	// draw sits far above the quiet-hours baseline around the clock
	snapshot := dto.FleetSnapshot{
		EnergyReadings: makeHourlyReadings("en-01", 7*24, func(i int, _ int) float64 {
			if i%10 == 0 {
				return 10
			}
			return 50
		}),
	}
	recommendations := oa.Advise(snapshot)

	var baseline *dto.OptimizationRecommendation
	for i := range recommendations {
		if recommendations[i].Impact == 0.9 {
			baseline = &recommendations[i]
			break
		}
	}
	require.NotNil(t, baseline)
	assert.Equal(t, dto.RecommendationTypeEnergy, baseline.Type)
	assert.Greater(t, baseline.EstimatedSavings, float64(0))
}

func TestOptimizationAdvisor_SustainedDrawScenario(t *testing.T) {
	oa := NewOptimizationAdvisor(DefaultConfig())

	// 7-day window with the last 6 hours at 3x the baseline draw
	snapshot := dto.FleetSnapshot{
		EnergyReadings: makeHourlyReadings("en-01", 7*24, func(i int, _ int) float64 {
			if i >= 7*24-6 {
				return 30
			}
			return 10
		}),
	}
	recommendations := oa.Advise(snapshot)

	require.NotEmpty(t, recommendations)
	assert.Equal(t, dto.RecommendationTypeEnergy, recommendations[0].Type)
	assert.Greater(t, recommendations[0].EstimatedSavings, float64(0))
}

func TestOptimizationAdvisor_TemperatureSetpoint(t *testing.T) {
	oa := NewOptimizationAdvisor(DefaultConfig())

	snapshot := dto.FleetSnapshot{
		Summaries: []dto.SensorSummary{
			{SensorId: "tp-01", Type: dto.SensorTypeTemperature},
			{SensorId: "en-01", Type: dto.SensorTypeEnergy},
		},
		TemperatureReadings: makeHourlyReadings("tp-01", 48, func(int, int) float64 { return 26.5 }),
	}
	recommendations := oa.Advise(snapshot)

	require.Len(t, recommendations, 1)
	assert.Equal(t, dto.RecommendationTypeTemperature, recommendations[0].Type)
	assert.InDelta(t, 0.7, recommendations[0].Impact, 0.0001)
	assert.Equal(t, []string{"tp-01"}, recommendations[0].SensorIds)
}

func TestOptimizationAdvisor_TemperatureInstability(t *testing.T) {
	oa := NewOptimizationAdvisor(DefaultConfig())

	snapshot := dto.FleetSnapshot{
		TemperatureReadings: makeHourlyReadings("tp-01", 48, func(i int, _ int) float64 {
			if i%2 == 0 {
				return 18
			}
			return 24
		}),
	}
	recommendations := oa.Advise(snapshot)

	require.Len(t, recommendations, 1)
	assert.Equal(t, dto.RecommendationTypeTemperature, recommendations[0].Type)
	assert.InDelta(t, 0.6, recommendations[0].Impact, 0.0001)
}

func TestOptimizationAdvisor_SortedByImpact(t *testing.T) {
	oa := NewOptimizationAdvisor(DefaultConfig())

	snapshot := dto.FleetSnapshot{
		EnergyReadings: makeHourlyReadings("en-01", 7*24, func(i int, _ int) float64 {
			if i%10 == 0 {
				return 10
			}
			return 50
		}),
		TemperatureReadings: makeHourlyReadings("tp-01", 48, func(int, int) float64 { return 27 }),
	}
	recommendations := oa.Advise(snapshot)

	require.GreaterOrEqual(t, len(recommendations), 3)
	for i := 1; i < len(recommendations); i++ {
		assert.GreaterOrEqual(t, recommendations[i-1].Impact, recommendations[i].Impact)
	}
	assert.InDelta(t, 0.9, recommendations[0].Impact, 0.0001)
}

func TestBuildFleetSnapshot(t *testing.T) {
	battery := 80.0
	sensors := []dto.Sensor{
		{Id: "tp-01", Type: dto.SensorTypeTemperature, Status: dto.SensorStatusActive, BatteryLevel: &battery},
		{Id: "en-01", Type: dto.SensorTypeEnergy, Status: dto.SensorStatusActive},
		{Id: "co2-01", Type: dto.SensorTypeCO2, Status: dto.SensorStatusInactive},
	}
	readingsBySensor := map[string][]dto.SensorReading{
		"tp-01": makeReadings("tp-01", millisPerHour, []float64{20, 22, 24}),
		"en-01": makeReadings("en-01", millisPerHour, []float64{10, 10, 10, 10}),
	}

	snapshot := BuildFleetSnapshot(sensors, readingsBySensor)

	require.Len(t, snapshot.Summaries, 3)
	assert.NotZero(t, snapshot.Created)

	byId := make(map[string]dto.SensorSummary)
	for _, s := range snapshot.Summaries {
		byId[s.SensorId] = s
	}

	assert.InDelta(t, 22, byId["tp-01"].AvgValue, 0.0001)
	assert.Equal(t, 3, byId["tp-01"].ReadingCount)
	assert.Equal(t, &battery, byId["tp-01"].BatteryLevel)
	assert.InDelta(t, 10, byId["en-01"].AvgValue, 0.0001)
	assert.Zero(t, byId["en-01"].Variance)
	assert.Zero(t, byId["co2-01"].ReadingCount)

	assert.Len(t, snapshot.TemperatureReadings, 3)
	assert.Len(t, snapshot.EnergyReadings, 4)
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/caio/go-tdigest/v4"

	"ecosense/common/dto"
)

// OptimizationAdvisor produces cross-sensor energy and temperature
// recommendations from a fleet snapshot. It runs once per fleet pass, after
// the per-sensor summaries are available.
type OptimizationAdvisor struct {
	config Config
}

func NewOptimizationAdvisor(config Config) *OptimizationAdvisor {
	return &OptimizationAdvisor{config: config}
}

// Advise returns recommendations sorted descending by impact. Categories with
// fewer than MinHourlyBuckets distinct hours of data are skipped entirely.
func (oa *OptimizationAdvisor) Advise(snapshot dto.FleetSnapshot) []dto.OptimizationRecommendation {
	var recommendations []dto.OptimizationRecommendation

	if rec := oa.peakUsage(snapshot.EnergyReadings); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	if rec := oa.baselineDeviation(snapshot.EnergyReadings); rec != nil {
		recommendations = append(recommendations, *rec)
	}
	recommendations = append(recommendations, oa.temperatureEfficiency(snapshot)...)

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Impact > recommendations[j].Impact
	})
	return recommendations
}

// peakUsage groups energy readings by hour-of-day and flags the top hours by
// average draw.
func (oa *OptimizationAdvisor) peakUsage(energyReadings []dto.SensorReading) *dto.OptimizationRecommendation {
	if !oa.hasEnoughHourlyBuckets(energyReadings) {
		return nil
	}

	hourSum := make(map[int]float64)
	hourCount := make(map[int]int)
	for _, r := range energyReadings {
		hour := time.UnixMilli(r.Timestamp).UTC().Hour()
		hourSum[hour] += r.Value
		hourCount[hour]++
	}

	type hourAvg struct {
		hour int
		avg  float64
	}
	averages := make([]hourAvg, 0, len(hourSum))
	for hour, sum := range hourSum {
		averages = append(averages, hourAvg{hour: hour, avg: sum / float64(hourCount[hour])})
	}
	sort.Slice(averages, func(i, j int) bool { return averages[i].avg > averages[j].avg })

	peakCount := oa.config.PeakHourCount
	if peakCount > len(averages) {
		peakCount = len(averages)
	}
	if peakCount == 0 {
		return nil
	}
	peakHours := make([]int, peakCount)
	for i := 0; i < peakCount; i++ {
		peakHours[i] = averages[i].hour
	}
	sort.Ints(peakHours)

	return &dto.OptimizationRecommendation{
		Type:             dto.RecommendationTypeEnergy,
		Title:            "Shift load away from peak usage hours",
		Description:      fmt.Sprintf("Energy draw peaks during hours %v. Rescheduling flexible loads outside these hours reduces peak demand charges.", peakHours),
		Impact:           0.8,
		EstimatedSavings: float64(len(peakHours)) * oa.config.SavingsPerPeakHour,
		PeakHours:        peakHours,
	}
}

// baselineDeviation compares the current average draw against the 10th
// percentile baseline and extrapolates the monthly overrun.
func (oa *OptimizationAdvisor) baselineDeviation(energyReadings []dto.SensorReading) *dto.OptimizationRecommendation {
	if !oa.hasEnoughHourlyBuckets(energyReadings) {
		return nil
	}

	digest, _ := tdigest.New()
	var sum float64
	for _, r := range energyReadings {
		if err := digest.Add(r.Value); err != nil {
			continue
		}
		sum += r.Value
	}
	if digest.Count() == 0 {
		return nil
	}
	baseline := digest.Quantile(0.1)
	currentAverage := sum / float64(len(energyReadings))

	if currentAverage <= oa.config.BaselineDeviationRatio*baseline {
		return nil
	}

	return &dto.OptimizationRecommendation{
		Type:             dto.RecommendationTypeEnergy,
		Title:            "Energy consumption well above baseline",
		Description:      fmt.Sprintf("Average draw %.1f is more than %.0f%% above the %.1f baseline. Check for equipment left running.", currentAverage, (oa.config.BaselineDeviationRatio-1)*100, baseline),
		Impact:           0.9,
		EstimatedSavings: (currentAverage - baseline) * 24 * 30,
	}
}

func (oa *OptimizationAdvisor) temperatureEfficiency(snapshot dto.FleetSnapshot) []dto.OptimizationRecommendation {
	if !oa.hasEnoughHourlyBuckets(snapshot.TemperatureReadings) {
		return nil
	}

	var recommendations []dto.OptimizationRecommendation

	mean, stdDev := meanStdDev(snapshot.TemperatureReadings)
	variance := stdDev * stdDev

	if mean > oa.config.TempSetpointCelsius {
		recommendations = append(recommendations, dto.OptimizationRecommendation{
			Type:             dto.RecommendationTypeTemperature,
			Title:            "Lower cooling setpoint by 1°C",
			Description:      fmt.Sprintf("Average temperature %.1f°C exceeds the %.0f°C target. A 1°C setpoint reduction saves an estimated 6-8%% in cooling cost.", mean, oa.config.TempSetpointCelsius),
			Impact:           0.7,
			EstimatedSavings: 0,
			SensorIds:        temperatureSensorIds(snapshot.Summaries),
		})
	}
	if variance > oa.config.TempVarianceLimit {
		recommendations = append(recommendations, dto.OptimizationRecommendation{
			Type:        dto.RecommendationTypeTemperature,
			Title:       "Temperature instability detected",
			Description: fmt.Sprintf("Temperature variance %.1f exceeds %.1f. Unstable temperatures usually indicate oversized HVAC cycling or poor zoning.", variance, oa.config.TempVarianceLimit),
			Impact:      0.6,
			SensorIds:   temperatureSensorIds(snapshot.Summaries),
		})
	}
	return recommendations
}

// hasEnoughHourlyBuckets requires the readings to span MinHourlyBuckets
// distinct epoch hours before any recommendation is emitted for the category.
func (oa *OptimizationAdvisor) hasEnoughHourlyBuckets(readings []dto.SensorReading) bool {
	buckets := make(map[int64]struct{})
	for _, r := range readings {
		buckets[r.Timestamp/millisPerHour] = struct{}{}
		if len(buckets) >= oa.config.MinHourlyBuckets {
			return true
		}
	}
	return false
}

func temperatureSensorIds(summaries []dto.SensorSummary) []string {
	var ids []string
	for _, s := range summaries {
		if s.Type == dto.SensorTypeTemperature {
			ids = append(ids, s.SensorId)
		}
	}
	return ids
}

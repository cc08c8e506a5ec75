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

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/google/uuid"

	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
)

const (
	anomalyValidity      = 24 * time.Hour
	patternValidity      = 7 * 24 * time.Hour
	optimizationValidity = 30 * 24 * time.Hour
)

// AnalyticsEngine is the per-sensor driver. It owns no goroutines and does no
// I/O; callers hand it already-fetched reading windows and may fan out across
// sensors freely since nothing here shares mutable state.
type AnalyticsEngine struct {
	config           Config
	lc               logger.LoggingClient
	featureExtractor *FeatureExtractor
	maintenance      *MaintenancePredictor
	anomaly          *AnomalyDetector
	pattern          *PatternAnalyzer
	optimization     *OptimizationAdvisor
}

func NewAnalyticsEngine(config Config, lc logger.LoggingClient) (*AnalyticsEngine, error) {
	if err := config.Validate(); err != nil {
		return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeBadRequest,
			fmt.Sprintf("invalid analytics configuration: %v", err))
	}
	return &AnalyticsEngine{
		config:           config,
		lc:               lc,
		featureExtractor: NewFeatureExtractor(config),
		maintenance:      NewMaintenancePredictor(config),
		anomaly:          NewAnomalyDetector(config),
		pattern:          NewPatternAnalyzer(config),
		optimization:     NewOptimizationAdvisor(config),
	}, nil
}

func (e *AnalyticsEngine) Config() Config {
	return e.config
}

// AnalyzeSensor runs the maintenance, anomaly and pattern analyzers over one
// sensor's reading window and wraps the results into Prediction records.
// Readings arriving out of order are sorted, not rejected. Readings belonging
// to a different sensor are a caller contract violation.
func (e *AnalyticsEngine) AnalyzeSensor(sensor dto.Sensor, readings []dto.SensorReading) ([]dto.Prediction, error) {
	if sensor.Id == "" {
		return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeMandatory, "sensor id is required")
	}
	for _, r := range readings {
		if r.SensorId != "" && r.SensorId != sensor.Id {
			return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeBadRequest,
				fmt.Sprintf("reading for sensor %s passed to analysis of sensor %s", r.SensorId, sensor.Id))
		}
	}

	window := make([]dto.SensorReading, len(readings))
	copy(window, readings)
	sort.SliceStable(window, func(i, j int) bool { return window[i].Timestamp < window[j].Timestamp })
	if len(window) > e.config.WindowSize {
		window = window[len(window)-e.config.WindowSize:]
	}

	now := time.Now()
	nowMillis := now.UnixMilli()
	predictions := make([]dto.Prediction, 0, 3)

	features := e.featureExtractor.Extract(sensor, window)

	maintenance := e.maintenance.Predict(features, len(window))
	predictions = append(predictions, dto.Prediction{
		Id:          uuid.NewString(),
		Type:        dto.PredictionTypeMaintenance,
		SensorId:    sensor.Id,
		Maintenance: &maintenance,
		Confidence:  maintenance.Confidence,
		Created:     nowMillis,
		ValidUntil:  now.Add(time.Duration(maintenance.EstimatedDays) * 24 * time.Hour).UnixMilli(),
	})

	if anomalies := e.anomaly.Detect(window); len(anomalies) > 0 {
		maxConfidence := 0.0
		for _, a := range anomalies {
			if a.Confidence > maxConfidence {
				maxConfidence = a.Confidence
			}
		}
		predictions = append(predictions, dto.Prediction{
			Id:         uuid.NewString(),
			Type:       dto.PredictionTypeAnomaly,
			SensorId:   sensor.Id,
			Anomalies:  anomalies,
			Confidence: maxConfidence,
			Created:    nowMillis,
			ValidUntil: now.Add(anomalyValidity).UnixMilli(),
		})
	}

	pattern := e.pattern.Analyze(window)
	predictions = append(predictions, dto.Prediction{
		Id:         uuid.NewString(),
		Type:       dto.PredictionTypePattern,
		SensorId:   sensor.Id,
		Pattern:    &pattern,
		Confidence: pattern.Confidence,
		Created:    nowMillis,
		ValidUntil: now.Add(patternValidity).UnixMilli(),
	})

	return predictions, nil
}

// AnalyzeFleet runs the cross-sensor optimization pass over a fleet snapshot.
// Recommendations belong to the synthetic "system" sensor.
func (e *AnalyticsEngine) AnalyzeFleet(snapshot dto.FleetSnapshot) []dto.Prediction {
	recommendations := e.optimization.Advise(snapshot)

	now := time.Now()
	predictions := make([]dto.Prediction, 0, len(recommendations))
	for i := range recommendations {
		rec := recommendations[i]
		predictions = append(predictions, dto.Prediction{
			Id:             uuid.NewString(),
			Type:           dto.PredictionTypeOptimization,
			SensorId:       dto.SystemSensorId,
			Recommendation: &rec,
			Confidence:     rec.Impact,
			Created:        now.UnixMilli(),
			ValidUntil:     now.Add(optimizationValidity).UnixMilli(),
		})
	}
	return predictions
}

// AnalyzeBatch iterates sensors independently. A panic or error while
// analyzing one sensor is logged and that sensor skipped, the batch always
// continues with the remaining sensors.
func (e *AnalyticsEngine) AnalyzeBatch(sensors []dto.Sensor, readingsBySensor map[string][]dto.SensorReading) []dto.Prediction {
	var predictions []dto.Prediction
	for _, sensor := range sensors {
		sensorPredictions := e.analyzeSensorIsolated(sensor, readingsBySensor[sensor.Id])
		predictions = append(predictions, sensorPredictions...)
	}
	return predictions
}

func (e *AnalyticsEngine) analyzeSensorIsolated(sensor dto.Sensor, readings []dto.SensorReading) (predictions []dto.Prediction) {
	defer func() {
		if r := recover(); r != nil {
			e.lc.Errorf("panic analyzing sensor %s: %v", sensor.Id, r)
			predictions = nil
		}
	}()

	predictions, err := e.AnalyzeSensor(sensor, readings)
	if err != nil {
		e.lc.Errorf("failed analyzing sensor %s: %v", sensor.Id, err)
		return nil
	}
	return predictions
}

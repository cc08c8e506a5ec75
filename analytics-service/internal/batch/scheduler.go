/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package batch

import (
	"context"
	"sync"
	"time"

	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"ecosense/analytics-service/pkg/analytics"
	"ecosense/analytics-service/pkg/db/redis"
	"ecosense/analytics-service/pkg/history"
	"ecosense/common/db"
	"ecosense/common/dto"
	commonService "ecosense/common/service"
)

const (
	defaultIntervalSecs   = 900
	defaultBudgetSecs     = 300
	defaultMaxConcurrency = 8
)

// ReadingBackfiller fetches a historical reading window from the time-series
// store when the hot store no longer holds enough of it.
type ReadingBackfiller interface {
	GetReadingHistory(sensorId string, start int64, end int64, stepSecs int64) ([]dto.SensorReading, error)
}

// Scheduler drives the periodic fleet analysis pass: fetch the sensor fleet,
// analyze every sensor within the wall-clock budget, run the fleet-wide
// optimization pass, then persist, archive and publish the outcome. A Redis
// lock ensures only one service instance runs a pass at a time.
type Scheduler struct {
	service       sdkinterfaces.ApplicationService
	engine        *analytics.AnalyticsEngine
	registry      commonService.SensorRegistryInterface
	dbClient      redis.AnalyticsDbClientInterface
	backfill      ReadingBackfiller
	historyRepo   history.HistoryRepositoryInterface
	publisher     Publisher
	telemetry     *Telemetry
	alertBuilder  *AlertBuilder
	interval      time.Duration
	budget        time.Duration
	maxConcurrent int
	windowSize    int
	minReadings   int
	stepSecs      int64
}

func NewScheduler(
	service sdkinterfaces.ApplicationService,
	engine *analytics.AnalyticsEngine,
	registry commonService.SensorRegistryInterface,
	dbClient redis.AnalyticsDbClientInterface,
	backfill ReadingBackfiller,
	historyRepo history.HistoryRepositoryInterface,
	publisher Publisher,
	telemetry *Telemetry,
	nodeName string,
) *Scheduler {
	scheduler := new(Scheduler)
	scheduler.service = service
	scheduler.engine = engine
	scheduler.registry = registry
	scheduler.dbClient = dbClient
	scheduler.backfill = backfill
	scheduler.historyRepo = historyRepo
	scheduler.publisher = publisher
	scheduler.telemetry = telemetry
	scheduler.alertBuilder = NewAlertBuilder(nodeName)
	scheduler.interval = settingDuration(service, "AnalysisIntervalSecs", defaultIntervalSecs)
	scheduler.budget = settingDuration(service, "AnalysisBudgetSecs", defaultBudgetSecs)
	scheduler.maxConcurrent = settingInt(service, "MaxConcurrentSensors", defaultMaxConcurrency)
	scheduler.windowSize = engine.Config().WindowSize
	scheduler.minReadings = engine.Config().MinReadings
	scheduler.stepSecs = engine.Config().ExpectedIntervalMillis / 1000
	if scheduler.stepSecs < 1 {
		scheduler.stepSecs = 1
	}
	return scheduler
}

func settingDuration(service sdkinterfaces.ApplicationService, name string, defaultSecs int) time.Duration {
	secs := settingInt(service, name, defaultSecs)
	return time.Duration(secs) * time.Second
}

func settingInt(service sdkinterfaces.ApplicationService, name string, defaultValue int) int {
	raw, err := service.GetAppSetting(name)
	if err != nil {
		return defaultValue
	}
	value, err := cast.ToIntE(raw)
	if err != nil || value <= 0 {
		service.LoggingClient().Warnf("invalid %s setting '%s', using default %d", name, raw, defaultValue)
		return defaultValue
	}
	return value
}

// Run blocks until the context is cancelled, executing one pass per interval.
func (s *Scheduler) Run(ctx context.Context) {
	lc := s.service.LoggingClient()
	lc.Infof("fleet analysis scheduler started, interval=%v budget=%v concurrency=%d",
		s.interval, s.budget, s.maxConcurrent)

	if err := s.RunOnce(ctx); err != nil {
		lc.Errorf("initial fleet analysis pass failed: %v", err)
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			lc.Info("fleet analysis scheduler stopped")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				lc.Errorf("fleet analysis pass failed: %v", err)
			}
		}
	}
}

// RunOnce executes a single fleet analysis pass. Sensors that cannot be
// analyzed are skipped, the pass never aborts on a per-sensor failure.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	lc := s.service.LoggingClient()
	started := time.Now()

	mutex, lockErr := s.dbClient.AcquireRedisLock(db.FleetAnalysisLock)
	if lockErr != nil {
		lc.Warnf("fleet analysis lock held elsewhere, skipping this pass: %v", lockErr)
		return nil
	}
	defer mutex.Unlock()

	sensors, err := s.registry.GetSensors()
	if err != nil {
		return err
	}
	if len(sensors) == 0 {
		lc.Warn("sensor registry returned no sensors, nothing to analyze")
		return nil
	}

	analysisCtx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	var mu sync.Mutex
	predictions := make([]dto.Prediction, 0)
	readingsBySensor := make(map[string][]dto.SensorReading)

	g, gctx := errgroup.WithContext(analysisCtx)
	g.SetLimit(s.maxConcurrent)
	for _, sensor := range sensors {
		sensor := sensor
		g.Go(func() error {
			select {
			case <-gctx.Done():
				// budget exhausted, partial results stand
				return nil
			default:
			}
			readings, dbErr := s.dbClient.GetReadingWindow(sensor.Id, s.windowSize)
			if dbErr != nil {
				s.countFailure()
				lc.Errorf("failed fetching reading window for sensor %s: %v", sensor.Id, dbErr)
				return nil
			}
			readings = s.backfillWindow(sensor.Id, readings)
			sensorPredictions, err := s.engine.AnalyzeSensor(sensor, readings)
			if err != nil {
				s.countFailure()
				lc.Errorf("analysis failed for sensor %s: %v", sensor.Id, err)
				return nil
			}
			mu.Lock()
			predictions = append(predictions, sensorPredictions...)
			readingsBySensor[sensor.Id] = readings
			mu.Unlock()
			if s.telemetry != nil {
				s.telemetry.sensorsAnalyzed.Inc(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	snapshot := analytics.BuildFleetSnapshot(sensors, readingsBySensor)
	predictions = append(predictions, s.engine.AnalyzeFleet(snapshot)...)

	if len(predictions) == 0 {
		lc.Infof("fleet analysis pass produced no predictions for %d sensors", len(sensors))
		return nil
	}

	if err := s.dbClient.SavePredictions(predictions); err != nil {
		lc.Errorf("failed saving %d predictions: %v", len(predictions), err)
		return err
	}
	if s.historyRepo != nil {
		if err := s.historyRepo.ArchivePredictions(predictions); err != nil {
			lc.Warnf("failed archiving predictions: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishPredictions(predictions); err != nil {
			lc.Errorf("failed publishing predictions: %v", err)
		}
	}
	s.countPredictions(predictions)
	alertCount := s.raiseAlerts(predictions)

	elapsed := time.Since(started)
	if s.telemetry != nil {
		s.telemetry.fleetAnalysisTime.Update(elapsed.Milliseconds())
	}
	lc.Infof("fleet analysis pass done: %d sensors, %d predictions, %d alerts in %v",
		len(sensors), len(predictions), alertCount, elapsed)
	return nil
}

// backfillWindow replaces a hot-store window too short to analyze with the
// range-query result from the time-series store, keeping the longer of the two.
func (s *Scheduler) backfillWindow(sensorId string, readings []dto.SensorReading) []dto.SensorReading {
	if s.backfill == nil || len(readings) >= s.minReadings {
		return readings
	}
	end := time.Now().Unix()
	start := end - int64(s.windowSize)*s.stepSecs
	history, err := s.backfill.GetReadingHistory(sensorId, start, end, s.stepSecs)
	if err != nil {
		s.service.LoggingClient().Warnf("history backfill failed for sensor %s: %v", sensorId, err)
		return readings
	}
	if len(history) > len(readings) {
		return history
	}
	return readings
}

// raiseAlerts publishes alert events that win the per-sensor dedup marker and
// returns how many were raised.
func (s *Scheduler) raiseAlerts(predictions []dto.Prediction) int {
	lc := s.service.LoggingClient()
	raised := 0
	for _, event := range s.alertBuilder.BuildAlerts(predictions) {
		won, err := s.dbClient.MarkAlertSent(event.SensorId, predictionTypeForEvent(event), AlertDedupWindowSecs)
		if err != nil {
			lc.Errorf("failed checking alert dedup marker for sensor %s: %v", event.SensorId, err)
			continue
		}
		if !won {
			lc.Debugf("alert for sensor %s/%s suppressed by dedup window", event.SensorId, event.EventType)
			continue
		}
		if s.publisher != nil {
			if err := s.publisher.PublishAlert(event); err != nil {
				lc.Errorf("failed publishing alert %s: %v", event.Id, err)
			}
		}
		if s.historyRepo != nil {
			if err := s.historyRepo.ArchiveAlert(event); err != nil {
				lc.Warnf("failed archiving alert %s: %v", event.Id, err)
			}
		}
		raised++
	}
	if s.telemetry != nil && raised > 0 {
		s.telemetry.alertsCount.Inc(int64(raised))
	}
	return raised
}

func (s *Scheduler) countPredictions(predictions []dto.Prediction) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.predictionsCount.Inc(int64(len(predictions)))
	for _, prediction := range predictions {
		switch prediction.Type {
		case dto.PredictionTypeAnomaly:
			s.telemetry.anomaliesCount.Inc(1)
		case dto.PredictionTypeMaintenance:
			if prediction.Maintenance != nil && prediction.Maintenance.NeedsMaintenance {
				s.telemetry.maintenanceDueCount.Inc(1)
			}
		}
	}
}

func (s *Scheduler) countFailure() {
	if s.telemetry != nil {
		s.telemetry.analysisFailures.Inc(1)
	}
}

func predictionTypeForEvent(event dto.EcoEvent) dto.PredictionType {
	if event.EventType == EventTypeMaintenanceDue {
		return dto.PredictionTypeMaintenance
	}
	return dto.PredictionTypeAnomaly
}

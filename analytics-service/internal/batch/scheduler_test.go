/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package batch

import (
	"context"
	"testing"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecosense/analytics-service/pkg/analytics"
	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
	commonService "ecosense/common/service"
	redisMocks "ecosense/mocks/ecosense/analytics-service/db/redis"
	"ecosense/mocks/ecosense/common/infrastructure/interfaces/utils"
)

type capturingPublisher struct {
	predictions []dto.Prediction
	alerts      []dto.EcoEvent
}

func (p *capturingPublisher) PublishPredictions(predictions []dto.Prediction) error {
	p.predictions = append(p.predictions, predictions...)
	return nil
}

func (p *capturingPublisher) PublishAlert(event dto.EcoEvent) error {
	p.alerts = append(p.alerts, event)
	return nil
}

func hourlyWindow(sensorId string, count int, valueAt func(i int) float64) []dto.SensorReading {
	end := time.Now().UTC().Truncate(time.Hour)
	start := end.UnixMilli() - int64(count)*time.Hour.Milliseconds()
	readings := make([]dto.SensorReading, count)
	for i := range readings {
		readings[i] = dto.SensorReading{
			SensorId:  sensorId,
			Timestamp: start + int64(i)*time.Hour.Milliseconds(),
			Value:     valueAt(i),
			Quality:   dto.QualityGood,
		}
	}
	return readings
}

type stubBackfiller struct {
	windows map[string][]dto.SensorReading
	calls   int
}

func (b *stubBackfiller) GetReadingHistory(sensorId string, _ int64, _ int64, _ int64) ([]dto.SensorReading, error) {
	b.calls++
	return b.windows[sensorId], nil
}

type failingRegistry struct{}

func (r *failingRegistry) GetSensors() ([]dto.Sensor, error) {
	return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeServerError, "registry unreachable")
}
func (r *failingRegistry) GetSensor(string) (*dto.Sensor, error) {
	return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeServerError, "registry unreachable")
}
func (r *failingRegistry) GetSensorsByType(dto.SensorType) ([]dto.Sensor, error) {
	return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeServerError, "registry unreachable")
}
func (r *failingRegistry) RefreshCache() error {
	return ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeServerError, "registry unreachable")
}

func newTestScheduler(t *testing.T, dbClient *redisMocks.MockAnalyticsDbClient, sensors []dto.Sensor, publisher Publisher) *Scheduler {
	t.Helper()
	u := utils.NewApplicationServiceMock(nil)
	engine, err := analytics.NewAnalyticsEngine(analytics.DefaultConfig(), u.AppService.LoggingClient())
	require.NoError(t, err)

	registry := commonService.NewSensorRegistryServiceForTest("http://localhost:48090")
	registry.SeedSensorCache(sensors)

	return NewScheduler(u.AppService, engine, registry, dbClient, nil, nil, publisher, nil, "node-1")
}

func TestScheduler_RunOnce_SteadyFleet(t *testing.T) {
	now := time.Now().UTC()
	sensors := []dto.Sensor{{
		Id:              "tp-01",
		Type:            dto.SensorTypeTemperature,
		Created:         now.AddDate(0, 0, -90).UnixMilli(),
		CalibrationDate: now.AddDate(0, 0, -20).UnixMilli(),
	}}
	readings := hourlyWindow("tp-01", 168, func(i int) float64 { return 20 + float64(i%6) })

	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("AcquireRedisLock", mock.Anything).Return(&redsync.Mutex{}, nil)
	dbClient.On("GetReadingWindow", "tp-01", mock.Anything).Return(readings, nil)
	dbClient.On("SavePredictions", mock.Anything).Return(nil)

	publisher := &capturingPublisher{}
	scheduler := newTestScheduler(t, dbClient, sensors, publisher)

	err := scheduler.RunOnce(context.Background())
	require.NoError(t, err)

	// steady in-range fleet: maintenance + pattern, no anomaly, no optimization
	require.Len(t, publisher.predictions, 2)
	types := map[dto.PredictionType]bool{}
	for _, p := range publisher.predictions {
		types[p.Type] = true
	}
	assert.True(t, types[dto.PredictionTypeMaintenance])
	assert.True(t, types[dto.PredictionTypePattern])
	assert.Empty(t, publisher.alerts)
	dbClient.AssertCalled(t, "SavePredictions", mock.Anything)
	dbClient.AssertNotCalled(t, "MarkAlertSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduler_RunOnce_HotFleetProducesOptimization(t *testing.T) {
	now := time.Now().UTC()
	sensors := []dto.Sensor{{
		Id:              "tp-02",
		Type:            dto.SensorTypeTemperature,
		Created:         now.AddDate(0, 0, -90).UnixMilli(),
		CalibrationDate: now.AddDate(0, 0, -20).UnixMilli(),
	}}
	readings := hourlyWindow("tp-02", 168, func(int) float64 { return 27 })

	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("AcquireRedisLock", mock.Anything).Return(&redsync.Mutex{}, nil)
	dbClient.On("GetReadingWindow", "tp-02", mock.Anything).Return(readings, nil)
	dbClient.On("SavePredictions", mock.Anything).Return(nil)

	publisher := &capturingPublisher{}
	scheduler := newTestScheduler(t, dbClient, sensors, publisher)

	require.NoError(t, scheduler.RunOnce(context.Background()))

	var optimization *dto.Prediction
	for i := range publisher.predictions {
		if publisher.predictions[i].Type == dto.PredictionTypeOptimization {
			optimization = &publisher.predictions[i]
		}
	}
	require.NotNil(t, optimization)
	assert.Equal(t, dto.SystemSensorId, optimization.SensorId)
	assert.Equal(t, dto.RecommendationTypeTemperature, optimization.Recommendation.Type)
}

func TestScheduler_RunOnce_SkipsWhenLockHeld(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("AcquireRedisLock", mock.Anything).
		Return(nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, "lock held"))

	publisher := &capturingPublisher{}
	scheduler := newTestScheduler(t, dbClient, []dto.Sensor{{Id: "tp-01"}}, publisher)

	err := scheduler.RunOnce(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, publisher.predictions)
	dbClient.AssertNotCalled(t, "GetReadingWindow", mock.Anything, mock.Anything)
}

func TestScheduler_RunOnce_SensorFailureDoesNotAbortPass(t *testing.T) {
	now := time.Now().UTC()
	sensors := []dto.Sensor{
		{Id: "bad-01", Created: now.AddDate(0, 0, -30).UnixMilli()},
		{Id: "good-01", Created: now.AddDate(0, 0, -30).UnixMilli()},
	}
	readings := hourlyWindow("good-01", 48, func(int) float64 { return 10 })

	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("AcquireRedisLock", mock.Anything).Return(&redsync.Mutex{}, nil)
	dbClient.On("GetReadingWindow", "bad-01", mock.Anything).
		Return(nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, "connection reset"))
	dbClient.On("GetReadingWindow", "good-01", mock.Anything).Return(readings, nil)
	dbClient.On("SavePredictions", mock.Anything).Return(nil)

	publisher := &capturingPublisher{}
	scheduler := newTestScheduler(t, dbClient, sensors, publisher)

	require.NoError(t, scheduler.RunOnce(context.Background()))

	require.NotEmpty(t, publisher.predictions)
	for _, p := range publisher.predictions {
		assert.Equal(t, "good-01", p.SensorId)
	}
}

func TestScheduler_RunOnce_RegistryErrorAbortsPass(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("AcquireRedisLock", mock.Anything).Return(&redsync.Mutex{}, nil)

	u := utils.NewApplicationServiceMock(nil)
	engine, err := analytics.NewAnalyticsEngine(analytics.DefaultConfig(), u.AppService.LoggingClient())
	require.NoError(t, err)
	scheduler := NewScheduler(u.AppService, engine, &failingRegistry{}, dbClient, nil, nil, nil, nil, "node-1")

	err = scheduler.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry unreachable")
	dbClient.AssertNotCalled(t, "GetReadingWindow", mock.Anything, mock.Anything)
	dbClient.AssertNotCalled(t, "SavePredictions", mock.Anything)
}

func TestScheduler_RunOnce_BackfillsShortWindow(t *testing.T) {
	now := time.Now().UTC()
	sensors := []dto.Sensor{{
		Id:              "tp-03",
		Type:            dto.SensorTypeTemperature,
		Created:         now.AddDate(0, 0, -90).UnixMilli(),
		CalibrationDate: now.AddDate(0, 0, -20).UnixMilli(),
	}}
	// hot store only holds a stub of the window, the time-series store has it all
	shortWindow := hourlyWindow("tp-03", 3, func(i int) float64 { return 21 })
	fullWindow := hourlyWindow("tp-03", 168, func(i int) float64 { return 20 + float64(i%6) })

	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("AcquireRedisLock", mock.Anything).Return(&redsync.Mutex{}, nil)
	dbClient.On("GetReadingWindow", "tp-03", mock.Anything).Return(shortWindow, nil)
	dbClient.On("SavePredictions", mock.Anything).Return(nil)

	publisher := &capturingPublisher{}
	scheduler := newTestScheduler(t, dbClient, sensors, publisher)
	backfill := &stubBackfiller{windows: map[string][]dto.SensorReading{"tp-03": fullWindow}}
	scheduler.backfill = backfill

	require.NoError(t, scheduler.RunOnce(context.Background()))

	assert.Equal(t, 1, backfill.calls)
	types := map[dto.PredictionType]bool{}
	for _, p := range publisher.predictions {
		types[p.Type] = true
	}
	// the backfilled window is long enough for the full analysis
	assert.True(t, types[dto.PredictionTypeMaintenance])
	assert.True(t, types[dto.PredictionTypePattern])
}

func TestScheduler_RaiseAlerts_DedupSuppresses(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("MarkAlertSent", "tp-01", dto.PredictionTypeMaintenance, AlertDedupWindowSecs).
		Return(true, nil).Once()
	dbClient.On("MarkAlertSent", "tp-01", dto.PredictionTypeMaintenance, AlertDedupWindowSecs).
		Return(false, nil)

	publisher := &capturingPublisher{}
	scheduler := newTestScheduler(t, dbClient, []dto.Sensor{}, publisher)

	predictions := []dto.Prediction{maintenancePrediction("tp-01", dto.PriorityCritical, true)}

	assert.Equal(t, 1, scheduler.raiseAlerts(predictions))
	// second round inside the dedup window raises nothing
	assert.Equal(t, 0, scheduler.raiseAlerts(predictions))
	require.Len(t, publisher.alerts, 1)
	assert.Equal(t, dto.SEVERITY_CRITICAL, publisher.alerts[0].Severity)
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecosense/analytics-service/pkg/analytics"
	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
	redisMocks "ecosense/mocks/ecosense/analytics-service/db/redis"
	"ecosense/mocks/ecosense/common/infrastructure/interfaces/utils"
)

type fakeRunner struct {
	ran chan struct{}
}

func (f *fakeRunner) RunOnce(_ context.Context) error {
	close(f.ran)
	return nil
}

func newTestRouter(t *testing.T, dbClient *redisMocks.MockAnalyticsDbClient, runner AnalysisRunner) *Router {
	t.Helper()
	u := utils.NewApplicationServiceMock(nil)
	engine, err := analytics.NewAnalyticsEngine(analytics.DefaultConfig(), u.AppService.LoggingClient())
	require.NoError(t, err)
	return NewRouter(u.AppService, engine, dbClient, nil, runner)
}

func echoGet(target string, pathParams map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for name, value := range pathParams {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	return c, rec
}

func TestGetPredictions(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("GetPredictions", 100).
		Return([]dto.Prediction{{Id: "p1", Type: dto.PredictionTypeMaintenance, SensorId: "tp-01"}}, nil)

	router := newTestRouter(t, dbClient, nil)
	c, rec := echoGet("/api/v3/analytics/predictions", nil)

	require.NoError(t, router.getPredictions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var predictions []dto.Prediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &predictions))
	require.Len(t, predictions, 1)
	assert.Equal(t, "p1", predictions[0].Id)
}

func TestGetPredictions_LimitParam(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("GetPredictions", 5).Return([]dto.Prediction{}, nil)

	router := newTestRouter(t, dbClient, nil)
	c, _ := echoGet("/api/v3/analytics/predictions?limit=5", nil)

	require.NoError(t, router.getPredictions(c))
	dbClient.AssertCalled(t, "GetPredictions", 5)
}

func TestGetPredictionsBySensor(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("GetPredictionsBySensor", "tp-01", 100).
		Return([]dto.Prediction{{Id: "p1", SensorId: "tp-01"}}, nil)

	router := newTestRouter(t, dbClient, nil)
	c, rec := echoGet("/api/v3/analytics/predictions/sensor/tp-01", map[string]string{"sensorId": "tp-01"})

	require.NoError(t, router.getPredictionsBySensor(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPredictionsByType_RejectsUnknownType(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	router := newTestRouter(t, dbClient, nil)

	c, _ := echoGet("/api/v3/analytics/predictions/type/bogus", map[string]string{"predictionType": "bogus"})
	err := router.getPredictionsByType(c)

	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	dbClient.AssertNotCalled(t, "GetPredictionsByType")
}

func TestGetPredictionsByType_DbErrorMapsToHTTP(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("GetPredictionsByType", dto.PredictionTypeAnomaly, 100).
		Return(nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, "redis down"))

	router := newTestRouter(t, dbClient, nil)
	c, _ := echoGet("/api/v3/analytics/predictions/type/anomaly", map[string]string{"predictionType": "anomaly"})

	err := router.getPredictionsByType(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestGetRecommendations_UnwrapsOptimizationPredictions(t *testing.T) {
	dbClient := &redisMocks.MockAnalyticsDbClient{}
	dbClient.On("GetPredictionsByType", dto.PredictionTypeOptimization, 100).Return([]dto.Prediction{
		{
			Id:   "p1",
			Type: dto.PredictionTypeOptimization,
			Recommendation: &dto.OptimizationRecommendation{
				Type:  dto.RecommendationTypeEnergy,
				Title: "Shift consumption away from peak hours",
			},
		},
		{Id: "p2", Type: dto.PredictionTypeOptimization}, // malformed, skipped
	}, nil)

	router := newTestRouter(t, dbClient, nil)
	c, rec := echoGet("/api/v3/analytics/recommendations", nil)

	require.NoError(t, router.getRecommendations(c))

	var recommendations []dto.OptimizationRecommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recommendations))
	require.Len(t, recommendations, 1)
	assert.Equal(t, dto.RecommendationTypeEnergy, recommendations[0].Type)
}

func TestGetConfig(t *testing.T) {
	router := newTestRouter(t, &redisMocks.MockAnalyticsDbClient{}, nil)
	c, rec := echoGet("/api/v3/analytics/config", nil)

	require.NoError(t, router.getConfig(c))

	var config analytics.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &config))
	assert.Equal(t, analytics.DefaultConfig().AnomalyWindow, config.AnomalyWindow)
}

func TestTriggerAnalysis(t *testing.T) {
	runner := &fakeRunner{ran: make(chan struct{})}
	router := newTestRouter(t, &redisMocks.MockAnalyticsDbClient{}, runner)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v3/analytics/run", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, router.triggerAnalysis(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case <-runner.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("analysis runner was never invoked")
	}
}

func TestTriggerAnalysis_NoScheduler(t *testing.T) {
	router := newTestRouter(t, &redisMocks.MockAnalyticsDbClient{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v3/analytics/run", nil)
	rec := httptest.NewRecorder()

	err := router.triggerAnalysis(e.NewContext(req, rec))
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"context"
	"net/http"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"ecosense/analytics-service/pkg/analytics"
	"ecosense/analytics-service/pkg/db/redis"
	"ecosense/analytics-service/pkg/history"
	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
)

const defaultQueryLimit = 100

// AnalysisRunner triggers an on-demand fleet analysis pass.
type AnalysisRunner interface {
	RunOnce(ctx context.Context) error
}

type Router struct {
	service     interfaces.ApplicationService
	engine      *analytics.AnalyticsEngine
	dbClient    redis.AnalyticsDbClientInterface
	historyRepo history.HistoryRepositoryInterface
	runner      AnalysisRunner
}

func NewRouter(
	service interfaces.ApplicationService,
	engine *analytics.AnalyticsEngine,
	dbClient redis.AnalyticsDbClientInterface,
	historyRepo history.HistoryRepositoryInterface,
	runner AnalysisRunner,
) *Router {
	router := new(Router)
	router.service = service
	router.engine = engine
	router.dbClient = dbClient
	router.historyRepo = historyRepo
	router.runner = runner
	return router
}

func (r *Router) LoadRestRoutes() {
	r.service.AddCustomRoute("/api/v3/analytics/predictions", interfaces.Authenticated, r.getPredictions, http.MethodGet)
	r.service.AddCustomRoute("/api/v3/analytics/predictions/sensor/:sensorId", interfaces.Authenticated, r.getPredictionsBySensor, http.MethodGet)
	r.service.AddCustomRoute("/api/v3/analytics/predictions/type/:predictionType", interfaces.Authenticated, r.getPredictionsByType, http.MethodGet)
	r.service.AddCustomRoute("/api/v3/analytics/recommendations", interfaces.Authenticated, r.getRecommendations, http.MethodGet)
	r.service.AddCustomRoute("/api/v3/analytics/config", interfaces.Authenticated, r.getConfig, http.MethodGet)
	r.service.AddCustomRoute("/api/v3/analytics/run", interfaces.Authenticated, r.triggerAnalysis, http.MethodPost)
	if r.historyRepo != nil {
		r.service.AddCustomRoute("/api/v3/analytics/history/predictions", interfaces.Authenticated, r.getPredictionHistory, http.MethodGet)
		r.service.AddCustomRoute("/api/v3/analytics/history/alerts", interfaces.Authenticated, r.getAlertHistory, http.MethodGet)
	}
}

func (r *Router) getPredictions(c echo.Context) error {
	predictions, err := r.dbClient.GetPredictions(queryLimit(c))
	if err != nil {
		r.service.LoggingClient().Errorf("Error querying predictions from db: %v", err)
		return err.ConvertToHTTPError()
	}
	return c.JSON(http.StatusOK, predictions)
}

func (r *Router) getPredictionsBySensor(c echo.Context) error {
	sensorId := c.Param("sensorId")
	if sensorId == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sensorId is required")
	}
	predictions, err := r.dbClient.GetPredictionsBySensor(sensorId, queryLimit(c))
	if err != nil {
		r.service.LoggingClient().Errorf("Error querying predictions for sensor %s from db: %v", sensorId, err)
		return err.ConvertToHTTPError()
	}
	return c.JSON(http.StatusOK, predictions)
}

func (r *Router) getPredictionsByType(c echo.Context) error {
	predictionType := dto.PredictionType(c.Param("predictionType"))
	switch predictionType {
	case dto.PredictionTypeMaintenance, dto.PredictionTypeAnomaly, dto.PredictionTypePattern, dto.PredictionTypeOptimization:
	default:
		return ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeBadRequest,
			"unknown prediction type: "+string(predictionType)).ConvertToHTTPError()
	}
	predictions, err := r.dbClient.GetPredictionsByType(predictionType, queryLimit(c))
	if err != nil {
		r.service.LoggingClient().Errorf("Error querying %s predictions from db: %v", predictionType, err)
		return err.ConvertToHTTPError()
	}
	return c.JSON(http.StatusOK, predictions)
}

// getRecommendations unwraps the optimization predictions into their
// recommendation payloads, newest first.
func (r *Router) getRecommendations(c echo.Context) error {
	predictions, err := r.dbClient.GetPredictionsByType(dto.PredictionTypeOptimization, queryLimit(c))
	if err != nil {
		r.service.LoggingClient().Errorf("Error querying recommendations from db: %v", err)
		return err.ConvertToHTTPError()
	}
	recommendations := make([]dto.OptimizationRecommendation, 0, len(predictions))
	for _, prediction := range predictions {
		if prediction.Recommendation != nil {
			recommendations = append(recommendations, *prediction.Recommendation)
		}
	}
	return c.JSON(http.StatusOK, recommendations)
}

func (r *Router) getConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, r.engine.Config())
}

func (r *Router) triggerAnalysis(c echo.Context) error {
	if r.runner == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "analysis scheduler not available")
	}
	lc := r.service.LoggingClient()
	lc.Info("on-demand fleet analysis requested")
	go func() {
		if err := r.runner.RunOnce(context.Background()); err != nil {
			lc.Errorf("on-demand fleet analysis failed: %v", err)
		}
	}()
	return c.JSON(http.StatusAccepted, map[string]string{"status": "analysis started"})
}

func (r *Router) getPredictionHistory(c echo.Context) error {
	records, err := r.historyRepo.GetPredictionHistory(
		c.QueryParam("sensorId"),
		c.QueryParam("type"),
		cast.ToInt64(c.QueryParam("from")),
		cast.ToInt64(c.QueryParam("to")),
		queryLimit(c),
	)
	if err != nil {
		r.service.LoggingClient().Errorf("Error querying prediction history from db: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	return c.JSON(http.StatusOK, records)
}

func (r *Router) getAlertHistory(c echo.Context) error {
	records, err := r.historyRepo.GetAlertHistory(c.QueryParam("sensorId"), queryLimit(c))
	if err != nil {
		r.service.LoggingClient().Errorf("Error querying alert history from db: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	return c.JSON(http.StatusOK, records)
}

func queryLimit(c echo.Context) int {
	limit, err := cast.ToIntE(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return defaultQueryLimit
	}
	return limit
}

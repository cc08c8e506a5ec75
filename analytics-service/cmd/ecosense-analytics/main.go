/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package main

import (
	"context"
	"os"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/spf13/cast"

	"ecosense/analytics-service/internal/batch"
	"ecosense/analytics-service/internal/ingest"
	"ecosense/analytics-service/internal/router"
	"ecosense/analytics-service/pkg/analytics"
	"ecosense/analytics-service/pkg/db/redis"
	"ecosense/analytics-service/pkg/history"
	"ecosense/common/client"
	"ecosense/common/db"
	commonService "ecosense/common/service"
	"ecosense/common/telemetry"
)

type analyticsApp struct {
	service   interfaces.ApplicationService
	lc        logger.LoggingClient
	engine    *analytics.AnalyticsEngine
	dbClient  redis.AnalyticsDbClientInterface
	scheduler *batch.Scheduler
}

func main() {
	app := analyticsApp{}
	code := app.CreateAndRunAppService(client.EcoSenseAnalyticsServiceKey, &commonService.AppService{})
	os.Exit(code)
}

func (app *analyticsApp) CreateAndRunAppService(serviceKey string, creator commonService.AppServiceCreator) int {
	var ok bool
	app.service, ok = creator.NewAppService(serviceKey)
	if !ok {
		return -1
	}
	app.lc = app.service.LoggingClient()

	metricsManager, err := telemetry.NewMetricsManager(app.service, client.EcoSenseAnalyticsServiceName)
	if err != nil {
		app.lc.Errorf("failed to create metrics manager: %s", err.Error())
		return -1
	}
	metricsManager.Run()

	engineConfig := analytics.LoadConfig(app.service)
	app.engine, err = analytics.NewAnalyticsEngine(engineConfig, app.lc)
	if err != nil {
		app.lc.Errorf("invalid analytics configuration: %s", err.Error())
		return -1
	}

	dbConfig := db.NewDatabaseConfig()
	dbConfig.LoadAppConfigurations(app.service)
	app.dbClient = redis.NewDBClient(dbConfig, app.lc)

	hostName := app.nodeName()

	metricsBatchSize := int64(100)
	if raw, err := app.service.GetAppSetting("MetricsBatchSize"); err == nil && raw != "" {
		if parsed, err := cast.ToInt64E(raw); err == nil && parsed > 0 {
			metricsBatchSize = parsed
		}
	}
	ingestTelemetry, hErr := ingest.NewTelemetry(app.service, client.EcoSenseAnalyticsServiceName,
		metricsManager.MetricsMgr, hostName, app.dbClient, metricsBatchSize)
	if hErr != nil {
		app.lc.Errorf("failed to create ingestion telemetry: %s", hErr.Error())
		return -1
	}

	ingestor := ingest.NewReadingIngestor(app.service, app.dbClient, ingestTelemetry, engineConfig.WindowSize)

	subscribedTopics, err := app.service.GetAppSettingStrings("SubscribeTopics")
	if err != nil {
		app.lc.Errorf("failed to retrieve SubscribeTopics from configuration: %s", err.Error())
		return -1
	}
	if err := app.service.AddFunctionsPipelineForTopics("ReadingIngest", subscribedTopics,
		ingestor.ProcessReadingEvents,
	); err != nil {
		app.lc.Errorf("AddFunctionsPipelineForTopics returned error: %s", err.Error())
		return -1
	}

	registryUrl, _ := app.service.GetAppSetting("SensorRegistryUrl")
	registry := commonService.GetSensorRegistryService(registryUrl)

	var backfill batch.ReadingBackfiller
	if dbConfig.DataStoreURL != "" {
		backfill = commonService.NewTimeSeriesReader(
			commonService.NewDefaultDataStoreProvider(dbConfig.DataStoreURL), app.lc)
	} else {
		app.lc.Info("DataStoreURL not configured, analysis windows come from Redis only")
	}

	historyRepo := app.buildHistoryRepo()

	publisher, err := batch.NewMQTTPublisher(app.service, client.EcoSenseAnalyticsServiceName)
	if err != nil {
		app.lc.Errorf("failed to create MQTT publisher, exiting: %s", err.Error())
		return -1
	}

	batchTelemetry := batch.NewTelemetry(app.service, client.EcoSenseAnalyticsServiceName,
		metricsManager.MetricsMgr, hostName)
	app.scheduler = batch.NewScheduler(app.service, app.engine, registry, app.dbClient,
		backfill, historyRepo, publisher, batchTelemetry, hostName)

	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	go app.scheduler.Run(schedulerCtx)

	r := router.NewRouter(app.service, app.engine, app.dbClient, historyRepo, app.scheduler)
	r.LoadRestRoutes()

	if err := app.service.Run(); err != nil {
		app.lc.Errorf("Run returned error: %s", err.Error())
		return -1
	}
	return 0
}

// buildHistoryRepo connects the archive store when the service is configured
// with a postgres endpoint, otherwise the service runs with Redis only.
func (app *analyticsApp) buildHistoryRepo() history.HistoryRepositoryInterface {
	if host, err := app.service.GetAppSetting("Analytics_db_host"); err != nil || host == "" {
		app.lc.Info("Analytics_db_host not configured, running without the history archive")
		return nil
	}
	repo := history.NewHistoryRepository(app.service)
	if err := repo.InitializeDB(); err != nil {
		app.lc.Errorf("failed to initialize the history archive, continuing without it: %v", err)
		return nil
	}
	return repo
}

func (app *analyticsApp) nodeName() string {
	if name, err := app.service.GetAppSetting("NodeName"); err == nil && name != "" {
		return name
	}
	hostName, err := os.Hostname()
	if err != nil {
		app.lc.Warnf("failed to resolve hostname: %v", err)
		return client.EcoSenseAnalyticsServiceName
	}
	return hostName
}

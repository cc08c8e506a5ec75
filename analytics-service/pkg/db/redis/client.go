/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package redis

import (
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/go-redsync/redsync/v4"

	"ecosense/common/db"
	"ecosense/common/db/redis"
	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
)

type DBClient struct {
	client *redis.DBClient
}

var DBClientImpl AnalyticsDbClientInterface

type AnalyticsDbClientInterface interface {
	redis.CommonRedisDBInterface
	GetDbClient(dbConfig *db.DatabaseConfig, logger logger.LoggingClient) AnalyticsDbClientInterface

	AddReadings(readings []dto.SensorReading, windowSize int) ecoErrors.EcoSenseError
	GetReadingWindow(sensorId string, windowSize int) ([]dto.SensorReading, ecoErrors.EcoSenseError)

	SavePredictions(predictions []dto.Prediction) ecoErrors.EcoSenseError
	GetPredictions(limit int) ([]dto.Prediction, ecoErrors.EcoSenseError)
	GetPredictionsBySensor(sensorId string, limit int) ([]dto.Prediction, ecoErrors.EcoSenseError)
	GetPredictionsByType(predictionType dto.PredictionType, limit int) ([]dto.Prediction, ecoErrors.EcoSenseError)

	MarkAlertSent(sensorId string, predictionType dto.PredictionType, windowSecs int64) (bool, ecoErrors.EcoSenseError)
}

func (dbClient *DBClient) GetDbClient(dbConfig *db.DatabaseConfig, lc logger.LoggingClient) AnalyticsDbClientInterface {
	dbc := redis.CreateDBClient(dbConfig)
	dbc.Logger = lc
	return &DBClient{client: dbc}
}

func NewDBClient(dbConfig *db.DatabaseConfig, lc logger.LoggingClient) AnalyticsDbClientInterface {
	return DBClientImpl.GetDbClient(dbConfig, lc)
}

func (dbClient *DBClient) IncrMetricCounterBy(key string, value int64) (int64, ecoErrors.EcoSenseError) {
	return dbClient.client.IncrMetricCounterBy(key, value)
}

func (dbClient *DBClient) SetMetricCounter(key string, value int64) ecoErrors.EcoSenseError {
	return dbClient.client.SetMetricCounter(key, value)
}

func (dbClient *DBClient) GetMetricCounter(key string) (int64, ecoErrors.EcoSenseError) {
	return dbClient.client.GetMetricCounter(key)
}

func (dbClient *DBClient) AcquireRedisLock(name string) (*redsync.Mutex, ecoErrors.EcoSenseError) {
	return dbClient.client.AcquireRedisLock(name)
}

func init() {
	DBClientImpl = &DBClient{}
}

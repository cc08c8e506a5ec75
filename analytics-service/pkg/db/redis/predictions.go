/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package redis

import (
	"encoding/json"
	"fmt"

	"github.com/gomodule/redigo/redis"

	"ecosense/common/db"
	redis2 "ecosense/common/db/redis"
	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
)

func predictionKey(id string) string {
	return db.Prediction + ":" + id
}

func predictionsBySensorKey(sensorId string) string {
	return db.PredictionBySensor + ":" + sensorId
}

func predictionsByTypeKey(predictionType dto.PredictionType) string {
	return db.Prediction + ":type:" + string(predictionType)
}

// SavePredictions stores each prediction under its own key with a TTL at its
// validity horizon and indexes it by sensor and type, scored by creation time.
func (dbClient *DBClient) SavePredictions(predictions []dto.Prediction) ecoErrors.EcoSenseError {
	if len(predictions) == 0 {
		return nil
	}
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := "Error saving predictions"

	_ = conn.Send("MULTI")
	for _, prediction := range predictions {
		m, err := json.Marshal(prediction)
		if err != nil {
			dbClient.client.Logger.Errorf("%s: marshal failed for %s: %v", errorMessage, prediction.Id, err)
			return ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeServerError, errorMessage)
		}
		ttlSecs := (prediction.ValidUntil - prediction.Created) / 1000
		if ttlSecs <= 0 {
			ttlSecs = 60
		}
		_ = conn.Send("SET", predictionKey(prediction.Id), m, "EX", ttlSecs)
		_ = conn.Send("ZADD", db.PredictionAll, prediction.Created, prediction.Id)
		_ = conn.Send("ZADD", predictionsBySensorKey(prediction.SensorId), prediction.Created, prediction.Id)
		_ = conn.Send("ZADD", predictionsByTypeKey(prediction.Type), prediction.Created, prediction.Id)
	}
	if _, err := conn.Do("EXEC"); err != nil {
		dbClient.client.Logger.Errorf("%s: %v", errorMessage, err)
		return ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, errorMessage)
	}
	return nil
}

func (dbClient *DBClient) GetPredictions(limit int) ([]dto.Prediction, ecoErrors.EcoSenseError) {
	return dbClient.getPredictionsByIndex(db.PredictionAll, limit)
}

func (dbClient *DBClient) GetPredictionsBySensor(sensorId string, limit int) ([]dto.Prediction, ecoErrors.EcoSenseError) {
	return dbClient.getPredictionsByIndex(predictionsBySensorKey(sensorId), limit)
}

func (dbClient *DBClient) GetPredictionsByType(predictionType dto.PredictionType, limit int) ([]dto.Prediction, ecoErrors.EcoSenseError) {
	return dbClient.getPredictionsByIndex(predictionsByTypeKey(predictionType), limit)
}

// getPredictionsByIndex reads the newest ids from one index, drops the ids
// whose backing keys have already expired and prunes those ids from the index.
func (dbClient *DBClient) getPredictionsByIndex(indexKey string, limit int) ([]dto.Prediction, ecoErrors.EcoSenseError) {
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := fmt.Sprintf("Error fetching predictions from index %s", indexKey)

	if limit <= 0 {
		limit = 100
	}
	ids, err := redis2.GetObjectsByRevRange(conn, indexKey, 0, limit-1)
	if err != nil {
		dbClient.client.Logger.Errorf("%s: %v", errorMessage, err)
		return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, errorMessage)
	}
	if len(ids) == 0 {
		return []dto.Prediction{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = predictionKey(id)
	}
	values, err := redis.Values(conn.Do("MGET", stringsToArgs(keys)...))
	if err != nil {
		dbClient.client.Logger.Errorf("%s: %v", errorMessage, err)
		return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, errorMessage)
	}

	predictions := make([]dto.Prediction, 0, len(values))
	var expired []string
	for i, v := range values {
		if v == nil {
			expired = append(expired, ids[i])
			continue
		}
		b, ok := v.([]byte)
		if !ok {
			continue
		}
		var prediction dto.Prediction
		if err := json.Unmarshal(b, &prediction); err != nil {
			dbClient.client.Logger.Errorf("%s: unmarshal failed for %s: %v", errorMessage, ids[i], err)
			continue
		}
		predictions = append(predictions, prediction)
	}

	if len(expired) > 0 {
		args := append([]interface{}{indexKey}, stringsToArgs(expired)...)
		if _, err := conn.Do("ZREM", args...); err != nil {
			dbClient.client.Logger.Warnf("failed pruning %d expired ids from %s: %v", len(expired), indexKey, err)
		}
	}
	return predictions, nil
}

// MarkAlertSent sets the hourly dedup marker for a sensor/type pair. Returns
// true when this caller won the marker and should raise the alert.
func (dbClient *DBClient) MarkAlertSent(sensorId string, predictionType dto.PredictionType, windowSecs int64) (bool, ecoErrors.EcoSenseError) {
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := "Error setting alert dedup marker"

	if windowSecs <= 0 {
		windowSecs = 3600
	}
	key := fmt.Sprintf("%s:%s:%s", db.AlertDedup, sensorId, predictionType)
	reply, err := redis.String(conn.Do("SET", key, db.MakeTimestamp(), "NX", "EX", windowSecs))
	if err == redis.ErrNil {
		// marker already present, alert was raised within the window
		return false, nil
	}
	if err != nil {
		dbClient.client.Logger.Errorf("%s for %s: %v", errorMessage, key, err)
		return false, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, errorMessage)
	}
	return reply == "OK", nil
}

func stringsToArgs(values []string) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

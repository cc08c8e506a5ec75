/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package redis

import (
	"encoding/json"

	"ecosense/common/db"
	redis2 "ecosense/common/db/redis"
	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
)

func readingWindowKey(sensorId string) string {
	return db.SensorReading + ":" + sensorId
}

// AddReadings appends readings to their per-sensor window (a sorted set scored
// by timestamp) and trims each touched window back to windowSize members.
func (dbClient *DBClient) AddReadings(readings []dto.SensorReading, windowSize int) ecoErrors.EcoSenseError {
	if len(readings) == 0 {
		return nil
	}
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := "Error saving sensor readings"

	touched := make(map[string]bool)
	_ = conn.Send("MULTI")
	for _, reading := range readings {
		m, err := json.Marshal(reading)
		if err != nil {
			dbClient.client.Logger.Errorf("%s: marshal failed for sensor %s: %v", errorMessage, reading.SensorId, err)
			return ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeServerError, errorMessage)
		}
		_ = conn.Send("ZADD", readingWindowKey(reading.SensorId), reading.Timestamp, m)
		touched[reading.SensorId] = true
	}
	for sensorId := range touched {
		// keep only the newest windowSize members
		_ = conn.Send("ZREMRANGEBYRANK", readingWindowKey(sensorId), 0, -(windowSize + 1))
	}
	if _, err := conn.Do("EXEC"); err != nil {
		dbClient.client.Logger.Errorf("%s: %v", errorMessage, err)
		return ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, errorMessage)
	}
	return nil
}

// GetReadingWindow returns up to windowSize readings for a sensor ordered
// ascending by timestamp.
func (dbClient *DBClient) GetReadingWindow(sensorId string, windowSize int) ([]dto.SensorReading, ecoErrors.EcoSenseError) {
	conn := dbClient.client.Pool.Get()
	defer conn.Close()

	errorMessage := "Error fetching reading window"

	members, err := redis2.GetObjectsByRevRange(conn, readingWindowKey(sensorId), 0, windowSize-1)
	if err != nil {
		dbClient.client.Logger.Errorf("%s for sensor %s: %v", errorMessage, sensorId, err)
		return nil, ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeDBError, errorMessage)
	}

	// ZREVRANGE returns newest first, flip back to chronological order
	readings := make([]dto.SensorReading, 0, len(members))
	for i := len(members) - 1; i >= 0; i-- {
		var reading dto.SensorReading
		if err := json.Unmarshal([]byte(members[i]), &reading); err != nil {
			dbClient.client.Logger.Errorf("%s: unmarshal failed for sensor %s: %v", errorMessage, sensorId, err)
			continue
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

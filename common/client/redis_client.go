/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package client

import (
	"github.com/go-redsync/redsync/v4"

	"ecosense/common/db"
	"ecosense/common/db/redis"
	ecoErrors "ecosense/common/errors"
)

type DBClient struct {
	client *redis.DBClient
}

var DBClientImpl DBClientInterface

type DBClientInterface interface {
	redis.CommonRedisDBInterface
	PublishToRedisBus(topic string, msg interface{}) error
	GetDbClient(dbConfig *db.DatabaseConfig) DBClientInterface
}

func (rc *DBClient) GetDbClient(dbConfig *db.DatabaseConfig) DBClientInterface {
	dbc := redis.CreateDBClient(dbConfig)
	return &DBClient{client: dbc}
}

func NewDBClient(dbConfig *db.DatabaseConfig) DBClientInterface {
	return DBClientImpl.GetDbClient(dbConfig)
}

func (rc *DBClient) PublishToRedisBus(topic string, msg interface{}) error {
	conn := rc.client.Pool.Get()
	defer conn.Close()
	_, err := conn.Do("PUBLISH", topic, msg)
	return err
}

func (rc *DBClient) IncrMetricCounterBy(key string, value int64) (int64, ecoErrors.EcoSenseError) {
	return rc.client.IncrMetricCounterBy(key, value)
}

func (rc *DBClient) SetMetricCounter(key string, value int64) ecoErrors.EcoSenseError {
	return rc.client.SetMetricCounter(key, value)
}

func (rc *DBClient) GetMetricCounter(key string) (int64, ecoErrors.EcoSenseError) {
	return rc.client.GetMetricCounter(key)
}

func (rc *DBClient) AcquireRedisLock(name string) (*redsync.Mutex, ecoErrors.EcoSenseError) {
	return rc.client.AcquireRedisLock(name)
}

func init() {
	DBClientImpl = &DBClient{}
}

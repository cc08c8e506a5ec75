/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package redis

import (
	"encoding/json"

	"github.com/gomodule/redigo/redis"

	"ecosense/common/db"
)

// GetObjectById retrieves and unmarshals the value stored at id
func GetObjectById(conn redis.Conn, id string, out interface{}) error {
	object, err := redis.Bytes(conn.Do("GET", id))
	if err == redis.ErrNil {
		return db.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(object, out)
}

// GetObjectsByIds fetches many keys at once; missing keys are skipped
func GetObjectsByIds(conn redis.Conn, ids []string) ([][]byte, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	values, err := redis.Values(conn.Do("MGET", args...))
	if err != nil {
		return nil, err
	}
	objects := make([][]byte, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		if b, ok := v.([]byte); ok {
			objects = append(objects, b)
		}
	}
	return objects, nil
}

// GetObjectsByRevRange returns members of a sorted set newest first
func GetObjectsByRevRange(conn redis.Conn, key string, start int, end int) ([]string, error) {
	return redis.Strings(conn.Do("ZREVRANGE", key, start, end))
}

// GetObjectsByScore returns members of a sorted set in a score window.
// limit <= 0 means no limit.
func GetObjectsByScore(conn redis.Conn, key string, start, end int64, limit int) ([][]byte, error) {
	args := []interface{}{key, start, end}
	if limit > 0 {
		args = append(args, "LIMIT", 0, limit)
	}
	return redis.ByteSlices(conn.Do("ZRANGEBYSCORE", args...))
}

// TrimSortedSetByScore drops members with score below cutoff
func TrimSortedSetByScore(conn redis.Conn, key string, cutoff int64) error {
	_, err := conn.Do("ZREMRANGEBYSCORE", key, "-inf", cutoff)
	return err
}

func ValidateKeyExists(conn redis.Conn, key string) error {
	exists, err := redis.Bool(conn.Do("EXISTS", key))
	if err != nil {
		return err
	}
	if !exists {
		return db.ErrNotFound
	}
	return nil
}

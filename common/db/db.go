/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package db

import (
	"errors"
	"time"
)

const (

	// Sensor metadata
	Sensor = "es:sensor"

	// Reading windows, one sorted set per sensor keyed by timestamp
	SensorReading = "es:reading"

	// Analytics outputs
	Prediction         = "es:pred"
	PredictionAll      = Prediction + ":all"
	PredictionBySensor = Prediction + ":sensor"
	FleetSnapshot      = "es:fleet:snapshot"

	// Alert dedup markers, one per sensor per prediction type per hour
	AlertDedup = "es:alert:dedup"

	// Node-level metric counters
	Node          = "es:node"
	MetricCounter = Node + ":mc"

	// Distributed lock so only one node runs the fleet optimization pass
	FleetAnalysisLock = "es:lock:fleet-analysis"
)

var (
	ErrNotFound            = errors.New("item not found")
	ErrUnsupportedDatabase = errors.New("unsupported database type")
	ErrInvalidObjectId     = errors.New("invalid object ID")
	ErrNotUnique           = errors.New("resource already exists")
	ErrNameEmpty           = errors.New("name is required")
	ErrInternal            = errors.New("internal error")
	ErrMaxLimitExceeded    = errors.New("maximum allowed limit exceeded for the entity")
)

type Configuration struct {
	DbType       string
	Host         string
	Port         int
	Timeout      int
	DatabaseName string
	Username     string
	Password     string
	BatchSize    int
}

func MakeTimestamp() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

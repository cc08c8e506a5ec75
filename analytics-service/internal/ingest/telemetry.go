/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package ingest

import (
	"math"
	"sync"

	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	comm "github.com/edgexfoundry/go-mod-core-contracts/v3/common"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/dtos"
	gometrics "github.com/rcrowley/go-metrics"

	"ecosense/analytics-service/pkg/db/redis"
	"ecosense/common/db"
	ecoErrors "ecosense/common/errors"
	common "ecosense/common/telemetry"
)

type Telemetry struct {
	inMessages        gometrics.Counter
	inReadings        gometrics.Counter
	redisClient       redis.AnalyticsDbClientInterface
	metricsBatchSize  int64
	currentBatchCount int64
	mutex             sync.Mutex
}

func NewTelemetry(service sdkinterfaces.ApplicationService, serviceName string, metricsManager interfaces.MetricsManager, hostName string, redisClient redis.AnalyticsDbClientInterface, batchSize int64) (*Telemetry, ecoErrors.EcoSenseError) {
	telemetry := Telemetry{}
	telemetry.inMessages = gometrics.NewCounter()
	telemetry.inReadings = gometrics.NewCounter()

	telemetry.redisClient = redisClient
	err := telemetry.fetchCurrentCountersValuesFromDb()
	if err != nil {
		// If call to db failed - we should stop the service - otherwise the metrics counting will start from 0 and affect the metrics aggregation
		service.LoggingClient().Errorf(err.Error())
		return nil, err
	}
	service.LoggingClient().Infof("metrics counters retrieved from db at the service start: %s-%v, %s-%v",
		common.MetricMessageCount, telemetry.inMessages.Count(), common.ReadingsCount, telemetry.inReadings.Count())

	tags := make(map[string]string)
	tags["data_provider_service"] = serviceName
	tags["host"] = hostName

	metricsManager.Register(common.MetricMessageCount, telemetry.inMessages, tags)
	metricsManager.Register(common.ReadingsCount, telemetry.inReadings, tags)

	telemetry.metricsBatchSize = batchSize
	telemetry.currentBatchCount = 0
	return &telemetry, nil
}

func (t *Telemetry) IncomingReading(reading dtos.BaseReading) ecoErrors.EcoSenseError {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	// Sensor name and resource name are bounded, so numeric readings count as
	// one message. String values count by payload size.
	size := common.MaxDeviceNameAndMetricNameSize
	if reading.ValueType == comm.ValueTypeString {
		size += len(reading.Value)
		var result int64
		count := float64(size) / float64(common.MaxMessageSize)
		if count < 1 {
			result = 1
		} else {
			result = int64(math.Ceil(count))
		}
		t.inMessages.Inc(result)
	} else {
		t.inMessages.Inc(1)
	}
	t.inReadings.Inc(1)
	t.currentBatchCount++

	if t.currentBatchCount >= t.metricsBatchSize {
		err := t.updateCountersInDb()
		if err != nil {
			return err
		}
		t.currentBatchCount = 0
	}
	return nil
}

func (t *Telemetry) updateCountersInDb() ecoErrors.EcoSenseError {
	if err := t.redisClient.SetMetricCounter(db.MetricCounter+":"+common.MetricMessageCount, t.inMessages.Count()); err != nil {
		return err
	}
	if err := t.redisClient.SetMetricCounter(db.MetricCounter+":"+common.ReadingsCount, t.inReadings.Count()); err != nil {
		return err
	}
	return nil
}

func (t *Telemetry) fetchCurrentCountersValuesFromDb() ecoErrors.EcoSenseError {
	metricMessageCount, err := t.redisClient.GetMetricCounter(db.MetricCounter + ":" + common.MetricMessageCount)
	if err != nil {
		return err
	}
	readingsCount, err := t.redisClient.GetMetricCounter(db.MetricCounter + ":" + common.ReadingsCount)
	if err != nil {
		return err
	}
	t.inMessages.Inc(metricMessageCount)
	t.inReadings.Inc(readingsCount)
	return nil
}

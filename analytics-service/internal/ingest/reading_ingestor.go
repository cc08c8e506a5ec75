/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/common"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/dtos"
	"github.com/spf13/cast"

	"ecosense/analytics-service/pkg/db/redis"
	"ecosense/common/dto"
	"ecosense/common/utils"
)

const QualityTagKey = "quality"

// ReadingIngestor accepts EdgeX events from the trigger topics, converts the
// numeric readings to sensor readings and appends them to the per-sensor
// analysis windows in Redis.
type ReadingIngestor struct {
	service    interfaces.ApplicationService
	dbClient   redis.AnalyticsDbClientInterface
	telemetry  *Telemetry
	windowSize int
}

func NewReadingIngestor(service interfaces.ApplicationService, dbClient redis.AnalyticsDbClientInterface, telemetry *Telemetry, windowSize int) *ReadingIngestor {
	ingestor := new(ReadingIngestor)
	ingestor.service = service
	ingestor.dbClient = dbClient
	ingestor.telemetry = telemetry
	ingestor.windowSize = windowSize
	return ingestor
}

// ProcessReadingEvents is the first pipeline function. It passes the converted
// readings downstream so the pipeline can publish or count them further.
func (ing *ReadingIngestor) ProcessReadingEvents(ctx interfaces.AppFunctionContext, data interface{}) (bool, interface{}) {
	lc := ctx.LoggingClient()
	if data == nil {
		return false, fmt.Errorf("function ProcessReadingEvents in pipeline '%s': no Event received", ctx.PipelineId())
	}

	event, err := coerceToEvent(data)
	if err != nil {
		return false, fmt.Errorf("function ProcessReadingEvents in pipeline '%s': %v", ctx.PipelineId(), err)
	}

	lc.Debugf("received event from sensor '%s' with %d readings", event.DeviceName, len(event.Readings))

	readings := ing.ToSensorReadings(ctx, event)
	if len(readings) == 0 {
		lc.Debugf("event from sensor '%s' carried no numeric readings, skipping", event.DeviceName)
		return true, event
	}

	if err := ing.dbClient.AddReadings(readings, ing.windowSize); err != nil {
		lc.Errorf("failed saving %d readings for sensor %s: %v", len(readings), event.DeviceName, err)
		return false, err
	}
	return true, readings
}

// ToSensorReadings converts the numeric readings of one event. Binary, object
// and non-numeric string readings are skipped with a debug log.
func (ing *ReadingIngestor) ToSensorReadings(ctx interfaces.AppFunctionContext, event dtos.Event) []dto.SensorReading {
	lc := ctx.LoggingClient()
	quality := qualityFromTags(event.Tags)

	readings := make([]dto.SensorReading, 0, len(event.Readings))
	for _, reading := range event.Readings {
		if reading.ValueType == common.ValueTypeBinary || reading.ValueType == common.ValueTypeObject ||
			strings.HasSuffix(reading.ValueType, "Array") {
			continue
		}
		value, err := readingValue(reading)
		if err != nil {
			lc.Debugf("skipping non-numeric reading %s/%s: %v", reading.DeviceName, reading.ResourceName, err)
			continue
		}

		sensorId := reading.DeviceName
		if sensorId == "" {
			sensorId = event.DeviceName
		}
		timestamp := originToMillis(reading.Origin)
		if timestamp == 0 {
			timestamp = originToMillis(event.Origin)
		}
		if timestamp == 0 {
			timestamp = time.Now().UnixMilli()
		}

		if ing.telemetry != nil {
			if err := ing.telemetry.IncomingReading(reading); err != nil {
				lc.Warnf("failed updating ingestion counters: %v", err)
			}
		}
		readings = append(readings, dto.SensorReading{
			Id:        reading.Id,
			SensorId:  sensorId,
			Timestamp: timestamp,
			Value:     value,
			Unit:      reading.Units,
			Quality:   quality,
		})
	}
	return readings
}

// readingValue parses typed numeric values the way EdgeX does, falling back to
// a lenient cast for string readings that may still carry numbers.
func readingValue(reading dtos.BaseReading) (float64, error) {
	switch reading.ValueType {
	case common.ValueTypeString, common.ValueTypeBool, "":
		return utils.ToFloat64(reading.Value)
	default:
		return utils.ParseSimpleValueToFloat64(reading.ValueType, reading.Value)
	}
}

func coerceToEvent(data interface{}) (dtos.Event, error) {
	switch v := data.(type) {
	case dtos.Event:
		return v, nil
	case *dtos.Event:
		return *v, nil
	case []byte:
		var event dtos.Event
		if err := json.Unmarshal(v, &event); err != nil {
			return dtos.Event{}, fmt.Errorf("failed unmarshaling Event payload: %v", err)
		}
		return event, nil
	default:
		return dtos.Event{}, fmt.Errorf("type received is not an Event")
	}
}

// originToMillis normalizes EdgeX origin timestamps, which are nanoseconds in
// practice but occasionally arrive already in milliseconds from older sensors.
func originToMillis(origin int64) int64 {
	if origin <= 0 {
		return 0
	}
	// epoch millis are 13 digits, epoch nanos 19
	if origin > 1e15 {
		return origin / int64(time.Millisecond)
	}
	return origin
}

func qualityFromTags(tags map[string]interface{}) dto.ReadingQuality {
	raw, ok := tags[QualityTagKey]
	if !ok {
		return dto.QualityGood
	}
	switch dto.ReadingQuality(cast.ToString(raw)) {
	case dto.QualityExcellent:
		return dto.QualityExcellent
	case dto.QualityGood:
		return dto.QualityGood
	case dto.QualityModerate:
		return dto.QualityModerate
	case dto.QualityPoor:
		return dto.QualityPoor
	default:
		return dto.QualityGood
	}
}

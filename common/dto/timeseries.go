/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package dto

import "github.com/spf13/cast"

// the below structures are used to fetch reading data from the timeseries db
type MetricResult struct {
	Metric map[string]interface{} `json:"metric,omitempty" codec:"metric,omitempty"`
	Values []interface{}          `json:"values,omitempty" codec:"values,omitempty"`
}

type TimeSeriesData struct {
	ResultType string         `json:"resultType,omitempty" codec:"resultType,omitempty"`
	Result     []MetricResult `json:"result,omitempty" codec:"result,omitempty"`
}

type TimeSeriesResponse struct {
	Status string         `json:"status,omitempty" codec:"status,omitempty"`
	Data   TimeSeriesData `json:"data,omitempty" codec:"data,omitempty"`
}

// ToSensorReadings flattens a range-query response into a reading window.
// Each value entry is a [timestampSecs, value] pair; entries that cannot be
// coerced are skipped.
func (r TimeSeriesResponse) ToSensorReadings(sensorId string) []SensorReading {
	var readings []SensorReading
	for _, result := range r.Data.Result {
		for _, v := range result.Values {
			pair, ok := v.([]interface{})
			if !ok || len(pair) != 2 {
				continue
			}
			tsSecs, err := cast.ToFloat64E(pair[0])
			if err != nil {
				continue
			}
			value, err := cast.ToFloat64E(pair[1])
			if err != nil {
				continue
			}
			readings = append(readings, SensorReading{
				SensorId:  sensorId,
				Timestamp: int64(tsSecs * 1000),
				Value:     value,
			})
		}
	}
	return readings
}

/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"ecosense/common/client"
	"ecosense/common/dto"
)

// TimeSeriesReader pulls historical reading windows out of the local
// time-series database via its range-query API. The analysis passes use it to
// backfill windows that are no longer in the redis hot store.
type TimeSeriesReader struct {
	DataStoreProvider DataStoreProvider
	Client            client.HTTPClient
	LoggingClient     logger.LoggingClient
}

func NewTimeSeriesReader(dataStoreProvider DataStoreProvider, lc logger.LoggingClient) *TimeSeriesReader {
	return &TimeSeriesReader{
		DataStoreProvider: dataStoreProvider,
		Client:            client.Client,
		LoggingClient:     lc,
	}
}

// GetReadingHistory queries the range API for one sensor between start and end
// (epoch seconds) at the given step and flattens the result into readings
// ordered the way the store returns them.
// e.g. http://data-store:8428/api/v1/query_range?query=sensor_value{sensorId="hall-co2-01"}&start=1604289920&end=1604304320&step=300
func (tr *TimeSeriesReader) GetReadingHistory(sensorId string, start int64, end int64, stepSecs int64) ([]dto.SensorReading, error) {
	if tr.Client == nil {
		tr.Client = &http.Client{}
	}
	iotUrl := tr.DataStoreProvider.GetDataURL() + "/query_range"

	request, err := http.NewRequest("GET", iotUrl, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-type", "application/json")
	tr.DataStoreProvider.SetAuthHeader(request)

	if len(sensorId) == 0 {
		return nil, errors.New("sensorId is required to build the range query")
	}
	q := request.URL.Query()
	q.Add("query", fmt.Sprintf(`sensor_value{sensorId="%s"}`, sensorId))
	q.Add("step", strconv.FormatInt(stepSecs, 10))
	q.Add("start", strconv.FormatInt(start, 10))
	q.Add("end", strconv.FormatInt(end, 10))
	request.URL.RawQuery = q.Encode()

	resp, err := tr.Client.Do(request)
	if err != nil {
		tr.LoggingClient.Errorf("error fetching data from data provider: error: %v", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tr.LoggingClient.Errorf("http status not 200 while fetching data: http Status: %d", resp.StatusCode)
		return nil, fmt.Errorf("failed to fetch data, http status: %s", resp.Status)
	}

	var timeSeriesResponse dto.TimeSeriesResponse
	err = json.NewDecoder(resp.Body).Decode(&timeSeriesResponse)
	if err != nil {
		tr.LoggingClient.Errorf("error decoding the body error: %v", err)
		return nil, err
	}
	if timeSeriesResponse.Status == "error" {
		return nil, errors.New("time-series store returned error status for range query")
	}

	return timeSeriesResponse.ToSensorReadings(sensorId), nil
}

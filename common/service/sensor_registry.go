/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/startup"
	gocache "github.com/patrickmn/go-cache"

	"ecosense/common/client"
	"ecosense/common/dto"
)

const (
	sensorCacheKey        = "sensors"
	sensorCacheExpiry     = 5 * time.Minute
	sensorCachePurge      = 10 * time.Minute
	registryFetchPageSize = 100
)

// SensorRegistryService resolves sensor metadata (type, location, battery,
// calibration) from the sensor registry service and caches it locally so the
// analysis passes don't hammer the registry on every cycle.
type SensorRegistryService struct {
	registryServiceUrl string
	cache              *gocache.Cache
}

var sensorRegistryService *SensorRegistryService

func newSensorRegistryService(registryServiceUrl string) *SensorRegistryService {
	registrySvc := new(SensorRegistryService)
	registrySvc.registryServiceUrl = registryServiceUrl
	registrySvc.cache = gocache.New(sensorCacheExpiry, sensorCachePurge)

	checkRegistryConnection(registrySvc)
	sensorRegistryService = registrySvc
	return registrySvc
}

func checkRegistryConnection(registrySvc *SensorRegistryService) {
	var err error
	startupTimer := startup.NewStartUpTimer(client.ServiceKeyEcoSensePrefix)
	for startupTimer.HasNotElapsed() {
		err = registrySvc.RefreshCache()
		if err == nil {
			break
		}
		startupTimer.SleepForInterval()
	}
	if err != nil {
		fmt.Println(
			"Failed to connect to sensor registry service in allotted time, or there was error from the registry",
		)
		os.Exit(1)
	}
}

func GetSensorRegistryService(registryServiceUrl string) *SensorRegistryService {
	var url string
	if len(registryServiceUrl) == 0 {
		url = "http://ecosense-sensor-registry:48090"
	} else {
		url = registryServiceUrl
	}
	sensorRegistryService = newSensorRegistryService(url)
	return sensorRegistryService
}

func (rs *SensorRegistryService) GetSensors() ([]dto.Sensor, error) {
	if cached, found := rs.cache.Get(sensorCacheKey); found {
		return cached.([]dto.Sensor), nil
	}
	if err := rs.RefreshCache(); err != nil {
		return nil, err
	}
	cached, _ := rs.cache.Get(sensorCacheKey)
	return cached.([]dto.Sensor), nil
}

func (rs *SensorRegistryService) GetSensor(sensorId string) (*dto.Sensor, error) {
	sensors, err := rs.GetSensors()
	if err != nil {
		return nil, err
	}
	for i := range sensors {
		if sensors[i].Id == sensorId {
			return &sensors[i], nil
		}
	}
	return nil, fmt.Errorf("sensor %s not found in registry", sensorId)
}

func (rs *SensorRegistryService) GetSensorsByType(sensorType dto.SensorType) ([]dto.Sensor, error) {
	sensors, err := rs.GetSensors()
	if err != nil {
		return nil, err
	}
	var matched []dto.Sensor
	for _, sensor := range sensors {
		if sensor.Type == sensorType {
			matched = append(matched, sensor)
		}
	}
	return matched, nil
}

// RefreshCache pages through the registry's sensor listing and replaces the
// cached snapshot in one shot.
func (rs *SensorRegistryService) RefreshCache() error {
	baseUrl := rs.registryServiceUrl + "/api/v3/sensor/all"
	offset := 0

	var sensors []dto.Sensor
	for {
		url := fmt.Sprintf("%s?limit=%d&offset=%d", baseUrl, registryFetchPageSize, offset)

		req, err := http.NewRequest("GET", url, nil)
		if err != nil {
			return fmt.Errorf("error creating request: %v", err)
		}
		req.Header.Add("Content-Type", "application/json")

		resp, err := client.Client.Do(req)
		if err != nil {
			return fmt.Errorf("error getting the sensor list: %v", err)
		}

		// Registry returns 416 when offset runs past the end of the listing
		if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable {
			resp.Body.Close()
			break
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("error getting sensor list, status code: %d", resp.StatusCode)
		}

		var page struct {
			Sensors []dto.Sensor `json:"sensors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return fmt.Errorf("error parsing the response body: %v", err)
		}
		resp.Body.Close()

		if len(page.Sensors) == 0 {
			break
		}
		sensors = append(sensors, page.Sensors...)

		if len(page.Sensors) < registryFetchPageSize {
			break
		}
		offset += registryFetchPageSize
	}

	sort.Slice(sensors, func(i, j int) bool { return sensors[i].Id < sensors[j].Id })
	rs.cache.Set(sensorCacheKey, sensors, gocache.DefaultExpiration)
	return nil
}

// SetSensorRegistryService for testing purpose
func SetSensorRegistryService(svc *SensorRegistryService) {
	sensorRegistryService = svc
}

// SeedSensorCache for testing purpose, bypasses the registry fetch
func (rs *SensorRegistryService) SeedSensorCache(sensors []dto.Sensor) {
	rs.cache.Set(sensorCacheKey, sensors, gocache.NoExpiration)
}

// NewSensorRegistryServiceForTest builds a registry service without the
// startup connection check
func NewSensorRegistryServiceForTest(registryServiceUrl string) *SensorRegistryService {
	registrySvc := new(SensorRegistryService)
	registrySvc.registryServiceUrl = registryServiceUrl
	registrySvc.cache = gocache.New(sensorCacheExpiry, sensorCachePurge)
	return registrySvc
}

package redis

import (
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/go-redsync/redsync/v4"
	"github.com/stretchr/testify/mock"

	analyticsRedis "ecosense/analytics-service/pkg/db/redis"
	"ecosense/common/db"
	"ecosense/common/dto"
	ecoErrors "ecosense/common/errors"
)

// MockAnalyticsDbClient is a mock implementation for the AnalyticsDbClientInterface
type MockAnalyticsDbClient struct {
	mock.Mock
}

func (m *MockAnalyticsDbClient) GetDbClient(dbConfig *db.DatabaseConfig, lc logger.LoggingClient) analyticsRedis.AnalyticsDbClientInterface {
	args := m.Called(dbConfig, lc)
	var res analyticsRedis.AnalyticsDbClientInterface
	if args.Get(0) != nil {
		res = args.Get(0).(analyticsRedis.AnalyticsDbClientInterface)
	}
	return res
}

func (m *MockAnalyticsDbClient) AddReadings(readings []dto.SensorReading, windowSize int) ecoErrors.EcoSenseError {
	args := m.Called(readings, windowSize)
	if args.Get(0) != nil {
		return args.Get(0).(ecoErrors.EcoSenseError)
	}
	return nil
}

func (m *MockAnalyticsDbClient) GetReadingWindow(sensorId string, windowSize int) ([]dto.SensorReading, ecoErrors.EcoSenseError) {
	args := m.Called(sensorId, windowSize)
	var res []dto.SensorReading
	if args.Get(0) != nil {
		res = args.Get(0).([]dto.SensorReading)
	}
	if args.Get(1) != nil {
		return res, args.Get(1).(ecoErrors.EcoSenseError)
	}
	return res, nil
}

func (m *MockAnalyticsDbClient) SavePredictions(predictions []dto.Prediction) ecoErrors.EcoSenseError {
	args := m.Called(predictions)
	if args.Get(0) != nil {
		return args.Get(0).(ecoErrors.EcoSenseError)
	}
	return nil
}

func (m *MockAnalyticsDbClient) GetPredictions(limit int) ([]dto.Prediction, ecoErrors.EcoSenseError) {
	args := m.Called(limit)
	var res []dto.Prediction
	if args.Get(0) != nil {
		res = args.Get(0).([]dto.Prediction)
	}
	if args.Get(1) != nil {
		return res, args.Get(1).(ecoErrors.EcoSenseError)
	}
	return res, nil
}

func (m *MockAnalyticsDbClient) GetPredictionsBySensor(sensorId string, limit int) ([]dto.Prediction, ecoErrors.EcoSenseError) {
	args := m.Called(sensorId, limit)
	var res []dto.Prediction
	if args.Get(0) != nil {
		res = args.Get(0).([]dto.Prediction)
	}
	if args.Get(1) != nil {
		return res, args.Get(1).(ecoErrors.EcoSenseError)
	}
	return res, nil
}

func (m *MockAnalyticsDbClient) GetPredictionsByType(predictionType dto.PredictionType, limit int) ([]dto.Prediction, ecoErrors.EcoSenseError) {
	args := m.Called(predictionType, limit)
	var res []dto.Prediction
	if args.Get(0) != nil {
		res = args.Get(0).([]dto.Prediction)
	}
	if args.Get(1) != nil {
		return res, args.Get(1).(ecoErrors.EcoSenseError)
	}
	return res, nil
}

func (m *MockAnalyticsDbClient) MarkAlertSent(sensorId string, predictionType dto.PredictionType, windowSecs int64) (bool, ecoErrors.EcoSenseError) {
	args := m.Called(sensorId, predictionType, windowSecs)
	if args.Get(1) != nil {
		return args.Bool(0), args.Get(1).(ecoErrors.EcoSenseError)
	}
	return args.Bool(0), nil
}

func (m *MockAnalyticsDbClient) IncrMetricCounterBy(key string, value int64) (int64, ecoErrors.EcoSenseError) {
	args := m.Called(key, value)
	if args.Get(1) != nil {
		return args.Get(0).(int64), args.Get(1).(ecoErrors.EcoSenseError)
	}
	return args.Get(0).(int64), nil
}

func (m *MockAnalyticsDbClient) SetMetricCounter(key string, value int64) ecoErrors.EcoSenseError {
	args := m.Called(key, value)
	if args.Get(0) != nil {
		return args.Get(0).(ecoErrors.EcoSenseError)
	}
	return nil
}

func (m *MockAnalyticsDbClient) GetMetricCounter(key string) (int64, ecoErrors.EcoSenseError) {
	args := m.Called(key)
	if args.Get(1) != nil {
		return args.Get(0).(int64), args.Get(1).(ecoErrors.EcoSenseError)
	}
	return args.Get(0).(int64), nil
}

func (m *MockAnalyticsDbClient) AcquireRedisLock(name string) (*redsync.Mutex, ecoErrors.EcoSenseError) {
	args := m.Called(name)
	var res *redsync.Mutex
	if args.Get(0) != nil {
		res = args.Get(0).(*redsync.Mutex)
	}
	if args.Get(1) != nil {
		return res, args.Get(1).(ecoErrors.EcoSenseError)
	}
	return res, nil
}

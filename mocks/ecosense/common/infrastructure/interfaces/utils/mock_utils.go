package utils

import (
	"context"
	"strings"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces/mocks"
	mocks3 "github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces/mocks"
	mocks2 "github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"

	ecoErrors "ecosense/common/errors"
)

type EcoSenseMockUtils struct {
	AppService         *mocks.ApplicationService
	AppSettings        map[string]string
	AppFunctionContext *mocks.AppFunctionContext
}

func NewApplicationServiceMock(appSettings map[string]string) *EcoSenseMockUtils {

	ecoSenseMockUtils := new(EcoSenseMockUtils)
	// Add mock for logs
	mockLogger := &mocks2.LoggingClient{}
	mockLogger.On("Debug", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Debugf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Debugf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Error", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Warnf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Warn", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Info", mock.Anything).Return()
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()
	mockLogger.On("Trace", mock.Anything).Return()
	mockLogger.On("Tracef", mock.Anything, mock.Anything, mock.Anything).Return()
	mockLogger.On("Tracef", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	mockAppService := &mocks.ApplicationService{}
	ecoSenseMockUtils.AppService = mockAppService
	mockAppService.On("LoggingClient").Return(mockLogger)
	mockAppService.On("AppContext").Return(context.Background())

	if appSettings == nil {
		ecoSenseMockUtils.AppSettings = make(map[string]string)
		ecoSenseMockUtils.AppService.On("GetAppSettingStrings", mock.Anything).Return([]string{}, errors.New("not found"))
	} else {
		for k, v := range appSettings {
			if strings.HasPrefix(v, "ERR:") {
				e := errors.New(v)
				ecoSenseMockUtils.AppService.On("GetAppSetting", k).Return("", e)
				ecoSenseMockUtils.AppService.On("GetAppSettingStrings", k).Return([]string{}, e)
			} else {
				ecoSenseMockUtils.AppService.On("GetAppSetting", k).Return(v, nil)
				ecoSenseMockUtils.AppService.On("GetAppSettingStrings", k).Return([]string{v}, nil)
			}
		}
	}

	ecoSenseMockUtils.AppService.On("GetAppSetting", mock.Anything).Return("", nil)
	ecoSenseMockUtils.AppService.On("GetAppSettingStrings", mock.Anything).Return([]string{}, nil)
	ecoSenseMockUtils.AppService.On("GetSecret", "redisdb", "username", "password").Return(map[string]string{"username": "username", "password": "password"}, nil)
	ecoSenseMockUtils.AppService.On("GetSecret", "dbconnection", "password").Return(map[string]string{"password": "password"}, nil)

	// Also create AppFunctionContext
	ctx := &mocks.AppFunctionContext{}
	ctx.On("LoggingClient").Return(mockLogger)
	ctx.On("PipelineId").Return("erty-876trfv-dsdf")
	ctx.On("CorrelationID").Return("erty-876trfv-dsdf2")

	ecoSenseMockUtils.AppFunctionContext = ctx

	mockSecretProvider := mocks3.SecretProvider{}
	mockSecretProvider.On("GetSecret", mock.Anything, "username", "password").Return(map[string]string{"username": "username", "password": "password"}, nil)
	mockSecretProvider.On("GetSecret", "mbconnection").Return(map[string]string{}, nil)
	mockSecretProvider.On("GetSecret", "dbconnection", "password").Return(map[string]string{"password": "password"}, nil)
	mockSecretProvider.On("GetSecret", "vaultconnection").Return(make(map[string]string), nil)
	mockSecretProvider.On("GetSecret", "vaultconnectionerror").Return(make(map[string]string), ecoErrors.NewCommonEcoSenseError(ecoErrors.ErrorTypeServerError, "mocked error"))

	ecoSenseMockUtils.AppService.On("SecretProvider").Return(&mockSecretProvider)

	return ecoSenseMockUtils
}

func (m *EcoSenseMockUtils) InitMQTTSettings() {
	appSettings := make(map[string]string)
	appSettings["scheme"] = "tcp"
	appSettings["MqttServer"] = "vm-loc-xxxx"
	appSettings["MqttPort"] = "1883"
	appSettings["MqttAuthMode"] = "usernamepassword"
	appSettings["QoS"] = "0"
	for k, v := range appSettings {
		m.AppService.On("GetAppSetting", k).Return(v, nil)
	}
	m.AppService.On("GetAppSetting", "MqttSecretPath").Return("", errors.New("path error"))
}

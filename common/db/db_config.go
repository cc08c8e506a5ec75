/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package db

import (
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
)

// DataStoreURL is not required for all scenarios as of now
type DatabaseConfig struct {
	RedisHost     string
	RedisPort     string
	RedisName     string
	RedisUsername string
	RedisPassword string
	DataStoreURL  string
}

func NewDatabaseConfig() *DatabaseConfig {
	appConfig := new(DatabaseConfig)
	return appConfig
}

// Loads only database configurations of redis db and the timeseries data store
func (dbConfig *DatabaseConfig) LoadAppConfigurations(service interfaces.ApplicationService) {

	lc := service.LoggingClient()

	redisHost, err := service.GetAppSetting("RedisHost")
	if err != nil {
		lc.Error(err.Error())
	}
	lc.Infof("RedisHost %s\n", redisHost)

	redisPort, err := service.GetAppSetting("RedisPort")
	if err != nil {
		lc.Error(err.Error())
	}
	lc.Infof("RedisPort %s\n", redisPort)

	redisName, err := service.GetAppSetting("RedisName")
	if err != nil {
		lc.Error(err.Error())
	}

	lc.Infof("RedisName %v, will read redisdb secret now", redisName)
	redisSecrets, err := service.SecretProvider().GetSecret("redisdb", "username", "password")
	if err == nil {
		dbConfig.RedisUsername = redisSecrets["username"]
		dbConfig.RedisPassword = redisSecrets["password"]
	} else {
		lc.Error(err.Error())
	}

	dataStoreURL, err := service.GetAppSetting("DataStoreURL")
	if err != nil {
		lc.Info("DataStoreURL config not found or it is not applicable")
	} else {
		lc.Infof("DataStoreURL %s\n", dataStoreURL)
	}

	dbConfig.RedisHost = redisHost
	dbConfig.RedisPort = redisPort
	dbConfig.RedisName = redisName

	if dataStoreURL != "" {
		dbConfig.DataStoreURL = dataStoreURL
	}
}

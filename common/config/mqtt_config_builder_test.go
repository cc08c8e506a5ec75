/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package config

import (
	"testing"

	"ecosense/mocks/ecosense/common/infrastructure/interfaces/utils"
)

func TestBuildMQTTSecretConfig(t *testing.T) {
	mockUtils := utils.NewApplicationServiceMock(nil)
	mockUtils.InitMQTTSettings()
	mqttConfig, err := BuildMQTTSecretConfig(mockUtils.AppService, "events", "clientId001")

	if err != nil {
		t.Errorf("BuildMQTTSecretConfig failed, err:%s", err.Error())
	}

	if mqttConfig.Topic != "ecosense/events" {
		t.Errorf("got %s, expected ecosense/events", mqttConfig.Topic)
	}
}

func TestBuildMQTTSecretConfig_TopicAlreadyPrefixed(t *testing.T) {
	mockUtils := utils.NewApplicationServiceMock(nil)
	mockUtils.InitMQTTSettings()
	mqttConfig, err := BuildMQTTSecretConfig(mockUtils.AppService, "ecosense/predictions", "clientId001")

	if err != nil {
		t.Errorf("BuildMQTTSecretConfig failed, err:%s", err.Error())
	}

	if mqttConfig.Topic != "ecosense/predictions" {
		t.Errorf("got %s, prefixed topic must not be prefixed twice", mqttConfig.Topic)
	}
}

/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package config

import (
	"os"
	"strings"

	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/transforms"
	"github.com/lithammer/shortuuid/v3"
)

const defaultTopicPrefix = "ecosense"

// BuildMQTTSecretConfig assembles the secret-aware MQTT sender configuration
// from the broker application settings. The client id gets a short random
// suffix so parallel service instances never collide on the broker.
func BuildMQTTSecretConfig(service interfaces.ApplicationService, topic string, clientId string) (transforms.MQTTSecretConfig, error) {
	scheme := settingOrDefault(service, "scheme", "tcp")
	server := settingOrDefault(service, "MqttServer", "edgex-mqtt-broker")
	port := settingOrDefault(service, "MqttPort", "1883")
	authMode := settingOrDefault(service, "MqttAuthMode", "none")
	// vault path holding the broker credentials for this service
	secretName := settingOrDefault(service, "MqttSecretName", "mbconnection")
	service.LoggingClient().Infof("MQTT broker %s://%s:%s authMode=%s", scheme, server, port, authMode)

	return transforms.MQTTSecretConfig{
		BrokerAddress:  scheme + "://" + server + ":" + port,
		ClientId:       clientId + "-" + shortuuid.New(),
		SecretName:     secretName,
		AutoReconnect:  true,
		KeepAlive:      "30s",
		ConnectTimeout: "60s",
		Topic:          prefixedTopic(topic),
		QoS:            GetMQTTQoS(service),
		Retain:         false,
		SkipCertVerify: true,
		AuthMode:       authMode,
	}, nil
}

func settingOrDefault(service interfaces.ApplicationService, name string, defaultValue string) string {
	value, err := service.GetAppSetting(name)
	if err != nil || value == "" {
		return defaultValue
	}
	return value
}

// prefixedTopic keeps publish topics under the message bus base prefix so they
// line up with the subscription side.
func prefixedTopic(topic string) string {
	prefix := os.Getenv("MESSAGEBUS_BASETOPICPREFIX")
	if prefix == "" {
		prefix = defaultTopicPrefix
	}
	if strings.HasPrefix(topic, prefix) {
		return topic
	}
	return prefix + "/" + topic
}

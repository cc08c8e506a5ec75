/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package batch

import (
	"fmt"

	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/transforms"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"ecosense/common/config"
	"ecosense/common/dto"
)

// Publisher pushes analysis outputs to downstream consumers.
type Publisher interface {
	PublishPredictions(predictions []dto.Prediction) error
	PublishAlert(event dto.EcoEvent) error
}

// MQTTPublisher exports predictions and alert events over the secured MQTT
// broker, on separate topics so dashboards and the event pipeline can
// subscribe independently.
type MQTTPublisher struct {
	service          sdkinterfaces.ApplicationService
	predictionSender *transforms.MQTTSecretSender
	alertSender      *transforms.MQTTSecretSender
	predictionTopic  string
	alertTopic       string
}

func NewMQTTPublisher(service sdkinterfaces.ApplicationService, serviceName string) (*MQTTPublisher, error) {
	lc := service.LoggingClient()

	predictionTopic, err := service.GetAppSetting("PredictionPublishTopic")
	if err != nil {
		predictionTopic = "ecosense/predictions"
	}
	alertTopic, err := service.GetAppSetting("AlertPublishTopic")
	if err != nil {
		alertTopic = "ecosense/events"
	}

	predictionConfig, err := config.BuildMQTTSecretConfig(service, predictionTopic, serviceName)
	if err != nil {
		lc.Errorf("failed building MQTT configuration for topic %s: %v", predictionTopic, err)
		return nil, err
	}
	alertConfig, err := config.BuildMQTTSecretConfig(service, alertTopic, serviceName)
	if err != nil {
		lc.Errorf("failed building MQTT configuration for topic %s: %v", alertTopic, err)
		return nil, err
	}

	return &MQTTPublisher{
		service:          service,
		predictionSender: transforms.NewMQTTSecretSender(predictionConfig, false),
		alertSender:      transforms.NewMQTTSecretSender(alertConfig, false),
		predictionTopic:  predictionTopic,
		alertTopic:       alertTopic,
	}, nil
}

func (p *MQTTPublisher) PublishPredictions(predictions []dto.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	ctx := p.service.BuildContext(uuid.NewString(), common.ContentTypeJSON)
	ok, err := p.predictionSender.MQTTSend(ctx, predictions)
	if !ok {
		if e, isErr := err.(error); isErr {
			return errors.Wrapf(e, "failed publishing %d predictions to %s", len(predictions), p.predictionTopic)
		}
		return fmt.Errorf("failed publishing %d predictions to %s", len(predictions), p.predictionTopic)
	}
	return nil
}

func (p *MQTTPublisher) PublishAlert(event dto.EcoEvent) error {
	ctx := p.service.BuildContext(uuid.NewString(), common.ContentTypeJSON)
	ok, err := p.alertSender.MQTTSend(ctx, event)
	if !ok {
		if e, isErr := err.(error); isErr {
			return errors.Wrapf(e, "failed publishing alert %s to %s", event.Id, p.alertTopic)
		}
		return fmt.Errorf("failed publishing alert %s to %s", event.Id, p.alertTopic)
	}
	return nil
}

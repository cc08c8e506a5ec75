/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package client

// Constants related to how services identify themselves in the Service Registry
const (
	ServiceKeyEcoSensePrefix = "app-ecosense-"

	// ServiceNames
	EcoSenseAnalyticsServiceName = "ecosense-analytics"

	// ServiceKeys - note that the service key should start with app- for appservices
	EcoSenseAnalyticsServiceKey = "app-ecosense-analytics"
)

const (
	MetricPrediction = "Prediction"
	MetricAlertEvent = "IoTEvent"

	LabelSensorName    = "sensor"
	LabelSensorType    = "type"
	LabelNodeName      = "host"
	LabelCorrelationId = "correlation_id"
	LabelSeverity      = "severity"
	LabelStatus        = "status"

	StatusSuccess = "Success"
	StatusFail    = "Failed"
)

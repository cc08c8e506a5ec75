/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package batch

import (
	sdkinterfaces "github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/edgexfoundry/go-mod-bootstrap/v3/bootstrap/interfaces"
	gometrics "github.com/rcrowley/go-metrics"

	common "ecosense/common/telemetry"
)

// Telemetry tracks the per-cycle analysis counters. The gauge resets on every
// report, so it carries the duration of the most recent fleet pass.
type Telemetry struct {
	predictionsCount    gometrics.Counter
	anomaliesCount      gometrics.Counter
	maintenanceDueCount gometrics.Counter
	alertsCount         gometrics.Counter
	analysisFailures    gometrics.Counter
	sensorsAnalyzed     gometrics.Counter
	fleetAnalysisTime   gometrics.Gauge
}

func NewTelemetry(service sdkinterfaces.ApplicationService, serviceName string, metricsManager interfaces.MetricsManager, hostName string) *Telemetry {
	telemetry := Telemetry{}
	telemetry.predictionsCount = gometrics.NewCounter()
	telemetry.anomaliesCount = gometrics.NewCounter()
	telemetry.maintenanceDueCount = gometrics.NewCounter()
	telemetry.alertsCount = gometrics.NewCounter()
	telemetry.analysisFailures = gometrics.NewCounter()
	telemetry.sensorsAnalyzed = gometrics.NewCounter()
	telemetry.fleetAnalysisTime = gometrics.NewGauge()

	tags := make(map[string]string)
	tags["data_provider_service"] = serviceName
	tags["host"] = hostName

	metricsManager.Register(common.PredictionsCount, telemetry.predictionsCount, tags)
	metricsManager.Register(common.AnomaliesCount, telemetry.anomaliesCount, tags)
	metricsManager.Register(common.MaintenanceDueCount, telemetry.maintenanceDueCount, tags)
	metricsManager.Register(common.AlertsCount, telemetry.alertsCount, tags)
	metricsManager.Register(common.AnalysisFailuresCount, telemetry.analysisFailures, tags)
	metricsManager.Register(common.SensorsAnalyzedCount, telemetry.sensorsAnalyzed, tags)
	metricsManager.Register(common.FleetAnalysisTime, telemetry.fleetAnalysisTime, tags)

	return &telemetry
}

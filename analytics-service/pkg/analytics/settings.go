/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package analytics

import (
	"github.com/edgexfoundry/app-functions-sdk-go/v3/pkg/interfaces"
	"github.com/spf13/cast"
)

// LoadConfig starts from the defaults and overrides the thresholds present in
// the application settings. Unset or malformed settings keep their default,
// Validate still runs when the engine is built.
func LoadConfig(service interfaces.ApplicationService) Config {
	config := DefaultConfig()

	overrideInt64(service, "ExpectedIntervalMillis", &config.ExpectedIntervalMillis)
	overrideInt(service, "WindowSize", &config.WindowSize)
	overrideInt(service, "MinReadings", &config.MinReadings)
	overrideFloat(service, "MaintenanceRiskLimit", &config.MaintenanceRiskLimit)
	overrideInt64(service, "CalibrationOverdueDays", &config.CalibrationOverdueDays)
	overrideInt64(service, "SensorLifespanDays", &config.SensorLifespanDays)
	overrideInt(service, "AnomalyWindow", &config.AnomalyWindow)
	overrideInt(service, "AnomalyMinReadings", &config.AnomalyMinReadings)
	overrideFloat(service, "ZScoreThreshold", &config.ZScoreThreshold)
	overrideInt(service, "PatternMinReadings", &config.PatternMinReadings)
	overrideInt(service, "ForecastPeriods", &config.ForecastPeriods)
	overrideFloat(service, "TempSetpointCelsius", &config.TempSetpointCelsius)

	return config
}

func overrideInt(service interfaces.ApplicationService, name string, target *int) {
	raw, err := service.GetAppSetting(name)
	if err != nil || raw == "" {
		return
	}
	if value, err := cast.ToIntE(raw); err == nil {
		*target = value
	} else {
		service.LoggingClient().Warnf("ignoring invalid %s setting '%s': %v", name, raw, err)
	}
}

func overrideInt64(service interfaces.ApplicationService, name string, target *int64) {
	raw, err := service.GetAppSetting(name)
	if err != nil || raw == "" {
		return
	}
	if value, err := cast.ToInt64E(raw); err == nil {
		*target = value
	} else {
		service.LoggingClient().Warnf("ignoring invalid %s setting '%s': %v", name, raw, err)
	}
}

func overrideFloat(service interfaces.ApplicationService, name string, target *float64) {
	raw, err := service.GetAppSetting(name)
	if err != nil || raw == "" {
		return
	}
	if value, err := cast.ToFloat64E(raw); err == nil {
		*target = value
	} else {
		service.LoggingClient().Warnf("ignoring invalid %s setting '%s': %v", name, raw, err)
	}
}

/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package service

import "ecosense/common/dto"

type SensorRegistryInterface interface {
	GetSensors() ([]dto.Sensor, error)
	GetSensor(sensorId string) (*dto.Sensor, error)
	GetSensorsByType(sensorType dto.SensorType) ([]dto.Sensor, error)
	RefreshCache() error
}

/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package history

// PredictionRecord is the archived form of a prediction. The typed payload is
// kept as the original JSON document so historical rows survive schema changes
// in the live DTOs.
type PredictionRecord struct {
	Id            string  `json:"id"             gorm:"primary_key"`
	Type          string  `json:"type"           gorm:"index"`
	SensorId      string  `json:"sensorId"       gorm:"index;column:sensor_id"`
	Confidence    float64 `json:"confidence"`
	Payload       string  `json:"payload"        gorm:"type:jsonb"`
	Created       int64   `json:"created"        gorm:"index"`
	ValidUntil    int64   `json:"validUntil"     gorm:"column:valid_until"`
	CorrelationId string  `json:"correlationId"  gorm:"column:correlation_id"`
}

func (record PredictionRecord) TableName() string {
	return "ecosense.prediction_history"
}

// AlertRecord archives each alert actually raised, after dedup.
type AlertRecord struct {
	Id            string `json:"id"            gorm:"primary_key"`
	Class         string `json:"class"`
	EventType     string `json:"eventType"     gorm:"column:event_type"`
	SensorId      string `json:"sensorId"      gorm:"index;column:sensor_id"`
	Name          string `json:"name"`
	Msg           string `json:"msg"`
	Severity      string `json:"severity"`
	Status        string `json:"status"`
	CorrelationId string `json:"correlationId" gorm:"column:correlation_id"`
	Created       int64  `json:"created"       gorm:"index"`
}

func (record AlertRecord) TableName() string {
	return "ecosense.alert_history"
}
